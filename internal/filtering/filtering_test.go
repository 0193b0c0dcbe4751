package filtering

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/cv-screener/internal/candidate"
)

func scored(id, name string, score, experience int, education candidate.Education, skills ...string) candidate.Scored {
	return candidate.Scored{
		Candidate: candidate.Candidate{
			ID:         id,
			Name:       name,
			Experience: experience,
			Education:  education,
			Skills:     skills,
		},
		Score:           score,
		MatchedRequired: skills,
	}
}

func pool() []candidate.Scored {
	return []candidate.Scored{
		scored("1", "John Smith", 85, 5, candidate.EducationBachelor, "React", "Node.js"),
		scored("2", "Sarah Johnson", 92, 7, candidate.EducationMaster, "Python", "AWS"),
		scored("3", "Mike Chen", 64, 3, candidate.EducationBachelor, "Java"),
		scored("4", "Emily Davis", 45, 2, candidate.EducationAssociate, "Figma"),
	}
}

func ids(c []candidate.Scored) []string {
	out := make([]string, 0, len(c))
	for _, s := range c {
		out = append(out, s.ID)
	}
	return out
}

func TestRunDefaultChain(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "contacted.json")
	contacted := candidate.NewContacted(time.Unix(0, 0), candidate.Candidate{ID: "2", Name: "Sarah Johnson"})
	if err := contacted.ToFile(path); err != nil {
		t.Fatalf("write contacted: %v", err)
	}

	core, observed := observer.New(zapcore.InfoLevel)
	cfg := &Config{
		ExcludeFile: path,
		Expression:  `candidate.educationRank >= 3`,
		MinScore:    60,
	}

	input := pool()
	got, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Default(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"1", "3"}; !slices.Equal(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	if len(input) != 4 {
		t.Fatalf("input must not be modified")
	}

	steps := observed.FilterMessage("filter step").All()
	if len(steps) != 4 {
		t.Fatalf("expected 4 step entries, got %d", len(steps))
	}
	first := steps[0].ContextMap()
	if first["name"] != "exclude_file" || first["dropped"] != int64(1) || first["left"] != int64(3) {
		t.Fatalf("unexpected exclude_file step: %v", first)
	}
}

func TestRunSkipsDisabledSteps(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	steps := Default()
	DisableByName(steps, "min_score", "showing everyone")

	got, err := Run(context.Background(), &Config{MinScore: 90}, Deps{Logger: zap.New(core)}, steps, pool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected all candidates, got %v", ids(got))
	}

	disabled := observed.FilterMessage("filter disabled").All()
	if len(disabled) != 1 || disabled[0].ContextMap()["name"] != "min_score" {
		t.Fatalf("expected min_score to be reported as disabled, got %v", disabled)
	}

	for _, status := range Describe(steps) {
		if status.Name == "min_score" && (status.Enabled || status.Reason != "showing everyone") {
			t.Fatalf("unexpected status: %+v", status)
		}
	}
}

func TestRunRejectsInvalidExpression(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), &Config{Expression: "candidate.score >>> 1"}, Deps{}, Default(), pool())
	if err == nil || !strings.HasPrefix(err.Error(), "expression: compile expression") {
		t.Fatalf("expected compile error, got %v", err)
	}
}

func TestExpressionFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{name: "no expression", expression: "", want: []string{"1", "2", "3", "4"}},
		{name: "skills membership", expression: `"AWS" in candidate.skills`, want: []string{"2"}},
		{name: "combined", expression: `candidate.experience > 2 && candidate.score < 90`, want: []string{"1", "3"}},
		{name: "string functions", expression: `candidate.name.startsWith("M")`, want: []string{"3"}},
		{name: "non boolean drops everything", expression: `candidate.score`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewExpression()
			if err := f.Validate(&Config{Expression: tt.expression}); err != nil {
				t.Fatalf("validate: %v", err)
			}
			got, step, err := f.Apply(context.Background(), Deps{Logger: zap.NewNop()}, pool())
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if !slices.Equal(ids(got), tt.want) {
				t.Fatalf("got %v, want %v", ids(got), tt.want)
			}
			if step.Initial != 4 || step.Left != len(tt.want) || step.Dropped != 4-len(tt.want) {
				t.Fatalf("unexpected step: %+v", step)
			}
		})
	}
}

func TestExpressionEvaluationErrorDropsCandidate(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)
	f := NewExpression()
	if err := f.Validate(&Config{Expression: `candidate.missing == 1`}); err != nil {
		t.Fatalf("validate: %v", err)
	}

	got, _, err := f.Apply(context.Background(), Deps{Logger: zap.New(core)}, pool()[:1])
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected candidate to be dropped, got %v", ids(got))
	}
	if observed.FilterMessage("expression evaluation failed").Len() != 1 {
		t.Fatalf("expected evaluation failure to be logged")
	}
}

func TestSearchAndMinScore(t *testing.T) {
	t.Parallel()

	cfg := &Config{Query: "java", MinScore: 50}
	steps := []Filter{NewSearch(), NewMinScore()}

	got, err := Run(context.Background(), cfg, Deps{}, steps, pool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"3"}; !slices.Equal(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestExcludeFileMissingIsEmpty(t *testing.T) {
	t.Parallel()

	f := NewExcludeFile()
	if err := f.Validate(&Config{ExcludeFile: filepath.Join(t.TempDir(), "absent.json")}); err != nil {
		t.Fatalf("validate: %v", err)
	}
	got, step, err := f.Apply(context.Background(), Deps{Logger: zap.NewNop()}, pool())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(got) != 4 || step.Dropped != 0 {
		t.Fatalf("expected nothing dropped, got %v (%+v)", ids(got), step)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, nil, Deps{}, Default(), pool()); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
