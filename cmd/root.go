package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/cv-screener/internal/delivery"
	"github.com/spigell/cv-screener/internal/templating"
)

const (
	app = "cv-screener"
)

type Config struct {
	// Criteria is decoded by candidate.DecodeCriteria so unknown keys are reported.
	Criteria    map[string]any  `mapstructure:"criteria"`
	Candidates  string          `mapstructure:"candidates"`
	ExcludeFile string          `mapstructure:"exclude-file"`
	Ranking     *RankingConfig  `mapstructure:"ranking"`
	Outreach    *OutreachConfig `mapstructure:"outreach"`
	AI          *AIConfig       `mapstructure:"ai"`
}

type RankingConfig struct {
	Query      string   `mapstructure:"query"`
	MinScore   int      `mapstructure:"min-score"`
	Sort       string   `mapstructure:"sort"`
	Locale     string   `mapstructure:"locale"`
	Expression string   `mapstructure:"expression"`
	Disabled   []string `mapstructure:"disabled-steps"`
}

type OutreachConfig struct {
	MinScore    int                  `mapstructure:"min-score"`
	Template    string               `mapstructure:"template"`
	Custom      *templating.Template `mapstructure:"custom-template"`
	Settings    templating.Settings  `mapstructure:"settings"`
	Concurrency int                  `mapstructure:"concurrency"`
	Timeout     string               `mapstructure:"timeout"`
	Sender      delivery.Config      `mapstructure:"sender"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "cv-screener scores parsed CVs against job criteria, ranks candidates and sends them personalized messages",
		SilenceUsage: true,
	}
)

// Execute executes the root command. Cancelling ctx stops long running
// commands such as send.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	if err := viper.BindEnv("exclude-file", "CV_SCREENER_EXCLUDE_FILE"); err != nil {
		log.Fatalf("binding CV_SCREENER_EXCLUDE_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("ranking.sort", "score")
	viper.SetDefault("ranking.locale", "en")
	viper.SetDefault("outreach.min-score", 80)
	viper.SetDefault("outreach.template", "interview")
	viper.SetDefault("outreach.concurrency", 4)
	viper.SetDefault("outreach.sender.kind", delivery.KindLog)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-retries", 3)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json-logs", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json-logs", rootCmd.PersistentFlags().Lookup("json-logs"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicit config must be readable. The default one is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

// redacted returns a copy safe to log. Inline secrets are masked.
func (c Config) redacted() Config {
	if c.AI == nil || c.AI.Gemini == nil || c.AI.Gemini.APIKey == "" {
		return c
	}
	aiConfig := *c.AI
	gemini := *aiConfig.Gemini
	gemini.APIKey = "[redacted]"
	aiConfig.Gemini = &gemini
	c.AI = &aiConfig
	return c
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
