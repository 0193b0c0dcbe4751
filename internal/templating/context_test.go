package templating

import (
	"testing"
	"time"

	"github.com/spigell/cv-screener/internal/candidate"
)

func TestContextBuilderDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.December, 28, 12, 0, 0, 0, time.UTC)
	b := NewContextBuilder(Settings{}).WithClock(func() time.Time { return now })

	ctx := b.Build(&candidate.Scored{
		Candidate:       candidate.Candidate{Name: "Mike Chen", Email: "mike@example.com"},
		Score:           64,
		MatchedRequired: []string{"Java"},
	})

	want := Context{
		KeyCandidateName:   "Mike Chen",
		KeyCandidateEmail:  "mike@example.com",
		KeyScore:           "64",
		KeyTopSkills:       "Java",
		KeyPosition:        DefaultPosition,
		KeyCompany:         DefaultCompany,
		KeyRecruiterName:   DefaultRecruiterName,
		KeyInterviewDate:   "Jan 4, 2025",
		KeyInterviewTime:   DefaultInterviewTime,
		KeyInterviewFormat: DefaultInterviewFormat,
	}
	for k, v := range want {
		if ctx[k] != v {
			t.Fatalf("%s: expected %q, got %q", k, v, ctx[k])
		}
	}
	if len(ctx) != len(want) {
		t.Fatalf("unexpected extra keys: %v", ctx)
	}
}

func TestContextBuilderSettings(t *testing.T) {
	t.Parallel()

	b := NewContextBuilder(Settings{
		Position:      "Platform Engineer",
		InterviewDate: "next Monday",
		Extra: map[string]string{
			"team":           "Infra",
			KeyCandidateName: "overridden",
		},
	})

	ctx := b.Build(&candidate.Scored{Candidate: candidate.Candidate{Name: "Ada"}})
	if ctx[KeyPosition] != "Platform Engineer" {
		t.Fatalf("unexpected position: %q", ctx[KeyPosition])
	}
	if ctx[KeyInterviewDate] != "next Monday" {
		t.Fatalf("unexpected date: %q", ctx[KeyInterviewDate])
	}
	if ctx["team"] != "Infra" {
		t.Fatalf("extra key missing: %v", ctx)
	}
	if ctx[KeyCandidateName] != "Ada" {
		t.Fatalf("extra keys must not override recognized ones, got %q", ctx[KeyCandidateName])
	}
	if ctx[KeyTopSkills] != "" {
		t.Fatalf("expected empty top skills, got %q", ctx[KeyTopSkills])
	}
	if got := b.Settings().Company; got != DefaultCompany {
		t.Fatalf("expected default company, got %q", got)
	}
}
