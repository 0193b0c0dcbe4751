// Package scoring computes the 0-100 match score of a candidate against job criteria.
package scoring

import (
	"math"
	"slices"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/skills"
)

// Component weights. They sum to MaxScore.
const (
	experienceWeight = 30.0
	requiredWeight   = 40.0
	preferredWeight  = 20.0
	educationWeight  = 10.0

	// educationPartial is awarded when the candidate is below the required level.
	educationPartial = 5.0

	MaxScore = 100
)

// Score evaluates one candidate. It is a pure function of its arguments.
func Score(c candidate.Candidate, criteria candidate.JobCriteria) candidate.Scored {
	matchedRequired := skills.Matched(criteria.RequiredSkills, c.Skills)
	matchedPreferred := skills.Matched(criteria.PreferredSkills, c.Skills)

	breakdown := candidate.Breakdown{
		Experience: experiencePoints(c.Experience, criteria.MinExperience),
		Required:   coveragePoints(len(matchedRequired), len(criteria.RequiredSkills), requiredWeight),
		Preferred:  coveragePoints(len(matchedPreferred), len(criteria.PreferredSkills), preferredWeight),
		Education:  educationPoints(c.Education, criteria.Education),
	}

	c.Skills = slices.Clone(c.Skills)
	c.Projects = slices.Clone(c.Projects)

	return candidate.Scored{
		Candidate:        c,
		Score:            roundScore(breakdown.Total()),
		MatchedRequired:  matchedRequired,
		MatchedPreferred: matchedPreferred,
		Breakdown:        breakdown,
	}
}

// Rescore evaluates every candidate against criteria, keeping the input order.
// Callers must use it again whenever criteria change; scored values are never patched.
func Rescore(candidates []candidate.Candidate, criteria candidate.JobCriteria) []candidate.Scored {
	scored := make([]candidate.Scored, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, Score(c, criteria))
	}
	return scored
}

// experiencePoints floors the requirement at one year, so a zero requirement
// still gives zero points to a candidate with zero experience.
func experiencePoints(years, required int) float64 {
	denominator := max(required, 1)
	points := float64(years) / float64(denominator) * experienceWeight
	return math.Min(points, experienceWeight)
}

// coveragePoints gives full weight when nothing is asked for.
func coveragePoints(satisfied, total int, weight float64) float64 {
	if total == 0 {
		return weight
	}
	return float64(satisfied) / float64(total) * weight
}

func educationPoints(have, required candidate.Education) float64 {
	if have.Rank() >= required.Rank() {
		return educationWeight
	}
	return educationPartial
}

// roundScore rounds half up and clamps into [0, MaxScore].
func roundScore(total float64) int {
	rounded := int(math.Floor(total + 0.5))
	return min(max(rounded, 0), MaxScore)
}
