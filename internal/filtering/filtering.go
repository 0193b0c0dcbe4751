package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/logger"
)

// Filter represents a single filtering step applied to scored candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, c []candidate.Scored) ([]candidate.Scored, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	ExcludeFile string
	Expression  string
	Query       string
	MinScore    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// switchable keeps the enabled state shared by all steps.
type switchable struct {
	disabled bool
	reason   string
}

func (s *switchable) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *switchable) IsEnabled() bool { return !s.disabled }

// Default returns the standard chain in execution order.
func Default() []Filter {
	return []Filter{
		NewExcludeFile(),
		NewExpression(),
		NewSearch(),
		NewMinScore(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled step and then executes them sequentially.
// The input slice is never modified.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, c []candidate.Scored) ([]candidate.Scored, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	log := logger.WithFields(deps.Logger)
	deps.Logger = log

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	current := c
	for _, step := range steps {
		if !step.IsEnabled() {
			log.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, deps, current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		log.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		current = next
	}

	return current, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// keep returns the candidates accepted by pred and the ids of the dropped ones.
func keep(c []candidate.Scored, pred func(*candidate.Scored) bool) ([]candidate.Scored, []string) {
	kept := make([]candidate.Scored, 0, len(c))
	var dropped []string
	for i := range c {
		if pred(&c[i]) {
			kept = append(kept, c[i])
			continue
		}
		dropped = append(dropped, c[i].ID)
	}
	return kept, dropped
}
