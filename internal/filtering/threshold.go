package filtering

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/ranking"
)

type searchFilter struct {
	switchable
	query string
}

// NewSearch creates a filter that keeps candidates whose name or skills contain the query.
func NewSearch() Filter {
	return &searchFilter{}
}

func (f *searchFilter) Name() string { return "search" }

func (f *searchFilter) Validate(cfg *Config) error {
	f.query = cfg.Query
	return nil
}

func (f *searchFilter) Apply(_ context.Context, deps Deps, c []candidate.Scored) ([]candidate.Scored, Step, error) {
	initial := len(c)
	if f.query == "" {
		return c, Step{Initial: initial, Left: initial}, nil
	}

	kept, removed := keep(c, func(s *candidate.Scored) bool {
		return ranking.MatchesQuery(s, f.query)
	})
	if len(removed) > 0 {
		deps.Logger.Debug("excluding candidates not matching search query",
			zap.String("query", f.query),
			zap.Strings("excluded_candidates", removed),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(removed), Left: len(kept)}, nil
}

func (f *searchFilter) Status() Status {
	details := map[string]string{}
	if f.query != "" {
		details["query"] = f.query
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type minScoreFilter struct {
	switchable
	minScore int
}

// NewMinScore creates a filter that drops candidates scored below the configured threshold.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Validate(cfg *Config) error {
	f.minScore = cfg.MinScore
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, c []candidate.Scored) ([]candidate.Scored, Step, error) {
	initial := len(c)
	kept, removed := keep(c, func(s *candidate.Scored) bool {
		return ranking.MeetsThreshold(s, f.minScore)
	})
	if len(removed) > 0 {
		deps.Logger.Debug("excluding candidates below minimum score",
			zap.Int("min_score", f.minScore),
			zap.Strings("excluded_candidates", removed),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(removed), Left: len(kept)}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.Itoa(f.minScore)},
	}
}
