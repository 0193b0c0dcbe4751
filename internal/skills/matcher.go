// Package skills decides whether candidate skills satisfy criterion tokens.
//
// Matching is a case-insensitive substring test in both directions, so
// "React" matches "React.js" and "JS" matches "JavaScript". It is a heuristic:
// "C" also matches "C++" and "Go" matches "Django".
package skills

import "strings"

// Matches reports whether the criterion and the candidate skill contain each other
// after lower-casing.
func Matches(criterion, candidateSkill string) bool {
	c := strings.ToLower(criterion)
	s := strings.ToLower(candidateSkill)
	return strings.Contains(s, c) || strings.Contains(c, s)
}

// Satisfied reports whether at least one candidate skill matches the criterion.
func Satisfied(criterion string, candidateSkills []string) bool {
	for _, skill := range candidateSkills {
		if Matches(criterion, skill) {
			return true
		}
	}
	return false
}

// Matched returns the criteria satisfied by the candidate skills, keeping the
// criteria order, casing and duplicates. A single candidate skill may satisfy
// several criteria.
func Matched(criteria []string, candidateSkills []string) []string {
	matched := make([]string, 0, len(criteria))
	for _, criterion := range criteria {
		if Satisfied(criterion, candidateSkills) {
			matched = append(matched, criterion)
		}
	}
	return matched
}
