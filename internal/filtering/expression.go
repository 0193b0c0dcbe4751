package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
)

const (
	expressionVariable  = "candidate"
	expressionCostLimit = 1000000
)

type expressionFilter struct {
	switchable
	source  string
	program cel.Program
}

// NewExpression creates a filter that keeps candidates for which a CEL
// expression evaluates to true. Without an expression every candidate is kept.
func NewExpression() Filter {
	return &expressionFilter{}
}

func (f *expressionFilter) Name() string { return "expression" }

func (f *expressionFilter) Validate(cfg *Config) error {
	f.source = strings.TrimSpace(cfg.Expression)
	f.program = nil
	if f.source == "" {
		return nil
	}

	program, err := CompileExpression(f.source)
	if err != nil {
		return err
	}
	f.program = program
	return nil
}

func (f *expressionFilter) Apply(_ context.Context, deps Deps, c []candidate.Scored) ([]candidate.Scored, Step, error) {
	initial := len(c)
	if f.program == nil {
		return c, Step{Initial: initial, Left: initial}, nil
	}

	kept, removed := keep(c, func(s *candidate.Scored) bool {
		out, _, err := f.program.Eval(map[string]any{expressionVariable: Facts(s)})
		if err != nil {
			deps.Logger.Warn("expression evaluation failed",
				zap.String("candidate_id", s.ID),
				zap.Error(err),
			)
			return false
		}
		matched, ok := out.Value().(bool)
		if !ok {
			deps.Logger.Warn("expression returned a non-boolean value",
				zap.String("candidate_id", s.ID),
				zap.String("type", out.Type().TypeName()),
			)
		}
		return ok && matched
	})
	if len(removed) > 0 {
		deps.Logger.Info("excluding candidates by expression",
			zap.String("expression", f.source),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(removed), Left: len(kept)}, nil
}

func (f *expressionFilter) Status() Status {
	details := map[string]string{}
	if f.source != "" {
		details["expression"] = f.source
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

// CompileExpression compiles src against the candidate environment.
// The resulting program is safe for concurrent evaluation.
func CompileExpression(src string) (cel.Program, error) {
	env, err := cel.NewEnv(cel.Variable(expressionVariable, cel.DynType))
	if err != nil {
		return nil, fmt.Errorf("create expression environment: %w", err)
	}

	ast, issues := env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	program, err := env.Program(ast, cel.CostLimit(expressionCostLimit))
	if err != nil {
		return nil, fmt.Errorf("create expression program: %w", err)
	}
	return program, nil
}

// Facts exposes a scored candidate to expressions.
func Facts(s *candidate.Scored) map[string]any {
	return map[string]any{
		"id":               s.ID,
		"name":             s.Name,
		"email":            s.Email,
		"experience":       int64(s.Experience),
		"education":        s.Education.String(),
		"educationRank":    int64(s.Education.Rank()),
		"skills":           nonNil(s.Skills),
		"score":            int64(s.Score),
		"matchedRequired":  nonNil(s.MatchedRequired),
		"matchedPreferred": nonNil(s.MatchedPreferred),
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
