// Package candidate holds the data model of an evaluation session: job criteria,
// candidate records as delivered by the ingestion side and their scored form.
package candidate

// JobCriteria describes what a position asks for.
// Required and preferred skills may overlap; each list is scored on its own.
type JobCriteria struct {
	RequiredSkills  []string  `mapstructure:"required-skills" json:"requiredSkills"`
	PreferredSkills []string  `mapstructure:"preferred-skills" json:"preferredSkills"`
	MinExperience   int       `mapstructure:"min-experience" json:"minExperience"`
	Education       Education `mapstructure:"education" json:"education"`
	Description     string    `mapstructure:"description" json:"description,omitempty"`
}

// Candidate is a parsed CV. It is read-only for the rest of the pipeline.
type Candidate struct {
	ID         string    `mapstructure:"id" json:"id"`
	Name       string    `mapstructure:"name" json:"name"`
	Email      string    `mapstructure:"email" json:"email,omitempty"`
	Phone      string    `mapstructure:"phone" json:"phone,omitempty"`
	Experience int       `mapstructure:"experience" json:"experience"`
	Education  Education `mapstructure:"education" json:"education,omitempty"`
	Skills     []string  `mapstructure:"skills" json:"skills"`
	Projects   []string  `mapstructure:"projects" json:"projects,omitempty"`
	Summary    string    `mapstructure:"summary" json:"summary,omitempty"`
	FileName   string    `mapstructure:"fileName" json:"fileName,omitempty"`
}

// Breakdown keeps the unrounded points of every score component.
type Breakdown struct {
	Experience float64 `json:"experience"`
	Required   float64 `json:"required"`
	Preferred  float64 `json:"preferred"`
	Education  float64 `json:"education"`
}

// Total is the unrounded sum of all components.
func (b Breakdown) Total() float64 {
	return b.Experience + b.Required + b.Preferred + b.Education
}

// Scored is a candidate evaluated against one JobCriteria value.
// Only the scoring package produces it; a criteria change requires a new value.
type Scored struct {
	Candidate

	Score            int       `json:"score"`
	MatchedRequired  []string  `json:"matchedRequiredSkills"`
	MatchedPreferred []string  `json:"matchedPreferredSkills"`
	Breakdown        Breakdown `json:"breakdown"`
}

// TopSkills returns up to n matched required skills in criteria order.
func (s *Scored) TopSkills(n int) []string {
	if n <= 0 || len(s.MatchedRequired) == 0 {
		return nil
	}
	if len(s.MatchedRequired) < n {
		n = len(s.MatchedRequired)
	}
	out := make([]string, n)
	copy(out, s.MatchedRequired[:n])
	return out
}
