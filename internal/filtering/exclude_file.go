package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
)

type excludeFileFilter struct {
	switchable
	path string
}

// NewExcludeFile creates a filter that removes candidates already recorded in the contacted file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = strings.TrimSpace(cfg.ExcludeFile)
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, c []candidate.Scored) ([]candidate.Scored, Step, error) {
	initial := len(c)
	if f.path == "" {
		return c, Step{Initial: initial, Left: initial}, nil
	}

	contacted, err := candidate.LoadContacted(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting contacted candidates from file: %w", err)
	}

	ids := make(map[string]struct{}, contacted.Len())
	for _, id := range contacted.IDs() {
		ids[id] = struct{}{}
	}

	kept, removed := keep(c, func(s *candidate.Scored) bool {
		_, seen := ids[s.ID]
		return !seen
	})
	if len(removed) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(removed), Left: len(kept)}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
