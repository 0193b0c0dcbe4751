package templating

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/cv-screener/internal/candidate"
)

// Recognized placeholder keys.
const (
	KeyCandidateName   = "candidateName"
	KeyCandidateEmail  = "candidateEmail"
	KeyScore           = "score"
	KeyTopSkills       = "topSkills"
	KeyPosition        = "position"
	KeyCompany         = "company"
	KeyRecruiterName   = "recruiterName"
	KeyInterviewDate   = "interviewDate"
	KeyInterviewTime   = "interviewTime"
	KeyInterviewFormat = "interviewFormat"
)

const (
	DefaultPosition        = "Software Developer"
	DefaultCompany         = "TechCorp Inc."
	DefaultRecruiterName   = "Sarah Johnson"
	DefaultInterviewTime   = "2:00 PM"
	DefaultInterviewFormat = "Video Call (Zoom)"
	DefaultDateLayout      = "Jan 2, 2006"
	DefaultInterviewDelay  = 7 * 24 * time.Hour

	topSkillsCount = 3
)

// Settings are the organisation-wide values shared by every message.
type Settings struct {
	Position        string `mapstructure:"position"`
	Company         string `mapstructure:"company"`
	RecruiterName   string `mapstructure:"recruiter-name"`
	InterviewTime   string `mapstructure:"interview-time"`
	InterviewFormat string `mapstructure:"interview-format"`
	// InterviewDate is used verbatim when set. Otherwise the date is
	// InterviewDelay after the build time, formatted with DateLayout.
	InterviewDate  string            `mapstructure:"interview-date"`
	InterviewDelay time.Duration     `mapstructure:"interview-delay"`
	DateLayout     string            `mapstructure:"date-layout"`
	Extra          map[string]string `mapstructure:"extra"`
}

func (s Settings) withDefaults() Settings {
	s.Position = orDefault(s.Position, DefaultPosition)
	s.Company = orDefault(s.Company, DefaultCompany)
	s.RecruiterName = orDefault(s.RecruiterName, DefaultRecruiterName)
	s.InterviewTime = orDefault(s.InterviewTime, DefaultInterviewTime)
	s.InterviewFormat = orDefault(s.InterviewFormat, DefaultInterviewFormat)
	s.DateLayout = orDefault(s.DateLayout, DefaultDateLayout)
	if s.InterviewDelay <= 0 {
		s.InterviewDelay = DefaultInterviewDelay
	}
	return s
}

// ContextBuilder produces a placeholder context per candidate.
type ContextBuilder struct {
	settings Settings
	now      func() time.Time
}

// NewContextBuilder fills unset settings with defaults.
func NewContextBuilder(settings Settings) *ContextBuilder {
	return &ContextBuilder{
		settings: settings.withDefaults(),
		now:      time.Now,
	}
}

// WithClock replaces the time source used for the interview date.
func (b *ContextBuilder) WithClock(now func() time.Time) *ContextBuilder {
	b.now = now
	return b
}

// Settings returns the effective settings.
func (b *ContextBuilder) Settings() Settings {
	return b.settings
}

// Build returns the context for one candidate. Extra keys never override the
// recognized ones.
func (b *ContextBuilder) Build(c *candidate.Scored) Context {
	s := b.settings

	date := s.InterviewDate
	if date == "" {
		date = b.now().Add(s.InterviewDelay).Format(s.DateLayout)
	}

	ctx := make(Context, len(s.Extra)+10)
	for k, v := range s.Extra {
		ctx[k] = v
	}
	ctx[KeyCandidateName] = c.Name
	ctx[KeyCandidateEmail] = c.Email
	ctx[KeyScore] = strconv.Itoa(c.Score)
	ctx[KeyTopSkills] = strings.Join(c.TopSkills(topSkillsCount), ", ")
	ctx[KeyPosition] = s.Position
	ctx[KeyCompany] = s.Company
	ctx[KeyRecruiterName] = s.RecruiterName
	ctx[KeyInterviewDate] = date
	ctx[KeyInterviewTime] = s.InterviewTime
	ctx[KeyInterviewFormat] = s.InterviewFormat

	return ctx
}

// Enricher adds per-candidate values to a built context. Returned keys are
// layered over the base context.
type Enricher interface {
	Enrich(ctx context.Context, c *candidate.Scored, base Context) (Context, error)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
