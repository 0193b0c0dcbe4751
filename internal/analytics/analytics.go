// Package analytics summarizes a scored candidate pool.
package analytics

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/ranking"
)

// TopSkillsLimit is the number of skills reported by Summarize.
const TopSkillsLimit = 10

// Bucket counts candidates falling into a labeled range.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SkillCount is the number of candidates listing a skill.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Summary holds aggregate statistics of a scored pool.
type Summary struct {
	Count             int `json:"count"`
	AverageScore      int `json:"averageScore"`
	AverageExperience int `json:"averageExperience"`

	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Other     int `json:"other"`

	ScoreDistribution      []Bucket     `json:"scoreDistribution"`
	ExperienceDistribution []Bucket     `json:"experienceDistribution"`
	TopSkills              []SkillCount `json:"topSkills"`
}

type bucketRange struct {
	label    string
	min, max int
}

var (
	scoreRanges = []bucketRange{
		{label: "80-100", min: ranking.ExcellentScore, max: math.MaxInt},
		{label: "60-79", min: ranking.GoodScore, max: ranking.ExcellentScore - 1},
		{label: "40-59", min: 40, max: ranking.GoodScore - 1},
		{label: "0-39", min: math.MinInt, max: 39},
	}
	experienceRanges = []bucketRange{
		{label: "0-2", min: math.MinInt, max: 2},
		{label: "3-5", min: 3, max: 5},
		{label: "6-8", min: 6, max: 8},
		{label: "9+", min: 9, max: math.MaxInt},
	}
)

// Summarize computes the pool statistics. Skills are counted once per
// candidate, case-insensitively, under their first seen spelling.
func Summarize(scored []candidate.Scored) Summary {
	s := Summary{
		Count:                  len(scored),
		ScoreDistribution:      emptyBuckets(scoreRanges),
		ExperienceDistribution: emptyBuckets(experienceRanges),
		TopSkills:              []SkillCount{},
	}
	if len(scored) == 0 {
		return s
	}

	var scoreSum, experienceSum int
	counts := make(map[string]*SkillCount)
	for i := range scored {
		c := &scored[i]
		scoreSum += c.Score
		experienceSum += c.Experience

		switch ranking.BadgeFor(c.Score) {
		case ranking.BadgeExcellent:
			s.Excellent++
		case ranking.BadgeGood:
			s.Good++
		default:
			s.Other++
		}

		place(s.ScoreDistribution, scoreRanges, c.Score)
		place(s.ExperienceDistribution, experienceRanges, c.Experience)

		seen := make(map[string]struct{}, len(c.Skills))
		for _, skill := range c.Skills {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if sc, ok := counts[key]; ok {
				sc.Count++
				continue
			}
			counts[key] = &SkillCount{Skill: strings.TrimSpace(skill), Count: 1}
		}
	}

	s.AverageScore = roundDiv(scoreSum, len(scored))
	s.AverageExperience = roundDiv(experienceSum, len(scored))
	s.TopSkills = topSkills(counts, TopSkillsLimit)

	return s
}

func topSkills(counts map[string]*SkillCount, limit int) []SkillCount {
	out := make([]SkillCount, 0, len(counts))
	for _, sc := range counts {
		out = append(out, *sc)
	}
	slices.SortFunc(out, func(a, b SkillCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a.Skill), strings.ToLower(b.Skill))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func emptyBuckets(ranges []bucketRange) []Bucket {
	out := make([]Bucket, len(ranges))
	for i, r := range ranges {
		out[i] = Bucket{Label: r.label}
	}
	return out
}

func place(buckets []Bucket, ranges []bucketRange, v int) {
	for i, r := range ranges {
		if v >= r.min && v <= r.max {
			buckets[i].Count++
			return
		}
	}
}

// roundDiv divides and rounds half up.
func roundDiv(sum, n int) int {
	return int(math.Floor(float64(sum)/float64(n) + 0.5))
}
