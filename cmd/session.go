package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/filtering"
	"github.com/spigell/cv-screener/internal/logger"
	"github.com/spigell/cv-screener/internal/scoring"
)

// session is the state shared by the commands working on a candidate pool.
type session struct {
	logger   *zap.Logger
	config   *Config
	criteria candidate.JobCriteria
	scored   []candidate.Scored
}

// addCandidatesFlag registers the candidates file flag on a command working on a pool.
func addCandidatesFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("candidates", "c", "", "JSON file with parsed candidate records (overrides 'candidates' in config)")
}

func newSession(cmd *cobra.Command) (*session, error) {
	log, err := logger.New(viper.GetBool("json-logs"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}
	if config == nil {
		return nil, errors.New("config is required")
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config.redacted(), "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	criteria, err := candidate.DecodeCriteria(config.Criteria)
	if err != nil {
		return nil, fmt.Errorf("decoding criteria: %w", err)
	}
	if criteria.Education != candidate.EducationNone && !criteria.Education.Known() {
		log.Warn("unknown education level in criteria, every candidate will meet it",
			zap.String("education", criteria.Education.String()),
			zap.Any("known", candidate.Levels()),
		)
	}

	path := config.Candidates
	if flag := cmd.Flag("candidates"); flag != nil && flag.Changed {
		path = flag.Value.String()
	}
	if path = strings.TrimSpace(path); path == "" {
		return nil, errors.New("candidates file is required (use --candidates or the 'candidates' key in the config)")
	}

	candidates, err := candidate.Load(path)
	if err != nil {
		return nil, err
	}

	scored := scoring.Rescore(candidates, criteria)
	log.Info("candidates scored",
		zap.String("file", path),
		zap.Int("count", len(scored)),
		zap.Strings("required_skills", criteria.RequiredSkills),
		zap.Int("min_experience", criteria.MinExperience),
	)
	for i := range scored {
		log.Debug("candidate score",
			append(logger.CandidateFields(scored[i].ID, scored[i].Name),
				zap.Int("score", scored[i].Score),
				zap.Float64("experience_points", scored[i].Breakdown.Experience),
				zap.Float64("required_points", scored[i].Breakdown.Required),
				zap.Float64("preferred_points", scored[i].Breakdown.Preferred),
				zap.Float64("education_points", scored[i].Breakdown.Education),
			)...,
		)
	}

	return &session{
		logger:   log,
		config:   config,
		criteria: criteria,
		scored:   scored,
	}, nil
}

func (s *session) ranking() RankingConfig {
	if s.config.Ranking == nil {
		return RankingConfig{}
	}
	return *s.config.Ranking
}

func (s *session) excludeFile() string {
	if file := strings.TrimSpace(s.config.ExcludeFile); file != "" {
		return file
	}
	return strings.TrimSpace(viper.GetString("exclude-file"))
}

// filterConfig builds the chain configuration. Flags that were set on cmd take
// precedence over the config file.
func (s *session) filterConfig(cmd *cobra.Command) (*filtering.Config, []string, error) {
	r := s.ranking()
	cfg := &filtering.Config{
		ExcludeFile: s.excludeFile(),
		Expression:  r.Expression,
		Query:       r.Query,
		MinScore:    r.MinScore,
	}
	disabled := r.Disabled

	flags := cmd.Flags()
	if flags.Changed("query") {
		cfg.Query, _ = flags.GetString("query")
	}
	if flags.Changed("min-score") {
		cfg.MinScore, _ = flags.GetInt("min-score")
	}
	if flags.Changed("expression") {
		cfg.Expression, _ = flags.GetString("expression")
	}
	if flags.Changed("exclude-file") {
		cfg.ExcludeFile, _ = flags.GetString("exclude-file")
	}
	if flags.Changed("disable-step") {
		extra, err := flags.GetStringSlice("disable-step")
		if err != nil {
			return nil, nil, err
		}
		disabled = append(disabled, extra...)
	}

	return cfg, disabled, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "keep candidates whose name or skills contain the query")
	cmd.Flags().Int("min-score", 0, "keep candidates scoring at least this value")
	cmd.Flags().String("expression", "", "CEL expression over 'candidate' that must evaluate to true")
	cmd.Flags().StringP("exclude-file", "e", "", "file with already contacted candidates to exclude")
	cmd.Flags().StringSlice("disable-step", nil, "filter steps to skip (exclude_file, expression, search, min_score)")
}

// filter runs the filter chain over the scored pool.
func (s *session) filter(cmd *cobra.Command, steps []filtering.Filter) ([]candidate.Scored, error) {
	cfg, disabled, err := s.filterConfig(cmd)
	if err != nil {
		return nil, err
	}
	for _, name := range disabled {
		filtering.DisableByName(steps, strings.TrimSpace(name), "disabled by configuration")
	}

	out, err := filtering.Run(cmd.Context(), cfg, filtering.Deps{Logger: s.logger}, steps, s.scored)
	if err != nil {
		return nil, fmt.Errorf("filtering failed: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		s.logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}
	return out, nil
}
