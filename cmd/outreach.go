package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/ai"
	"github.com/spigell/cv-screener/internal/ai/gemini"
	"github.com/spigell/cv-screener/internal/outreach"
	"github.com/spigell/cv-screener/internal/secrets"
	"github.com/spigell/cv-screener/internal/templating"
)

func (s *session) outreach() OutreachConfig {
	if s.config.Outreach == nil {
		return OutreachConfig{MinScore: 80, Template: "interview", Concurrency: 1}
	}
	return *s.config.Outreach
}

// template picks the --template flag, then a custom template from the config,
// then the configured built-in.
func (s *session) template(cmd *cobra.Command) (templating.Template, error) {
	cfg := s.outreach()

	if cmd.Flags().Changed("template") {
		name, _ := cmd.Flags().GetString("template")
		return templating.Builtin(strings.TrimSpace(name))
	}
	if cfg.Custom != nil {
		custom := *cfg.Custom
		if custom.Name == "" {
			custom.Name = "custom"
		}
		return custom, custom.Validate()
	}
	return templating.Builtin(cfg.Template)
}

func (s *session) plan(ctx context.Context, cmd *cobra.Command) (outreach.Plan, error) {
	cfg := s.outreach()

	tpl, err := s.template(cmd)
	if err != nil {
		return outreach.Plan{}, err
	}

	enricher, err := s.enricher(ctx)
	if err != nil {
		return outreach.Plan{}, err
	}

	plan := outreach.Plan{
		MinScore: cfg.MinScore,
		Template: tpl,
		Builder:  templating.NewContextBuilder(cfg.Settings),
		Logger:   s.logger,
	}
	if enricher != nil {
		plan.Enricher = enricher
		if !slices.Contains(tpl.Placeholders(), ai.KeyPersonalNote) {
			s.logger.Warn("ai enrichment is enabled but the template has no personal note placeholder",
				zap.String("template", tpl.Name),
				zap.String("placeholder", "{{"+ai.KeyPersonalNote+"}}"),
			)
		}
	}

	if cmd.Flags().Changed("min-score") {
		plan.MinScore, _ = cmd.Flags().GetInt("min-score")
	}

	return plan, nil
}

func (s *session) enricher(ctx context.Context) (templating.Enricher, error) {
	cfg := s.config.AI
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	src := secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	}
	if !src.Configured() {
		return nil, errors.New("ai enrichment is enabled but no gemini api key is configured (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)")
	}

	apiKey, err := secrets.Load(src)
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model,
		gemini.WithMaxRetries(cfg.Gemini.MaxRetries),
		gemini.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ai enrichment enabled", zap.String("model", generator.Model()))

	writer := gemini.NewNoteWriter(generator, s.logger, cfg.Gemini.MaxLogLength)
	return ai.NewEnricher(writer, s.criteria, s.logger), nil
}

func (s *session) sendTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(s.outreach().Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse outreach timeout %q: %w", raw, err)
	}
	return d, nil
}
