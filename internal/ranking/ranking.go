// Package ranking filters and orders scored candidates for display.
package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/spigell/cv-screener/internal/candidate"
)

// TopN is the number of leading entries labeled as top candidates.
const TopN = 3

type SortKey string

const (
	SortByScore      SortKey = "score"
	SortByExperience SortKey = "experience"
	SortByName       SortKey = "name"
)

// ParseSortKey validates a sort key. An empty string selects SortByScore.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case "":
		return SortByScore, nil
	case SortByScore, SortByExperience, SortByName:
		return key, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (expected score, experience or name)", s)
	}
}

// Options selects and orders a view.
type Options struct {
	// Query is matched case-insensitively against the name and every skill.
	Query    string
	MinScore int
	SortBy   SortKey
	// Locale drives name collation. The zero value collates with the root locale.
	Locale language.Tag
}

// Entry is one row of a view. Position, Top and Badge depend on the current
// ordering and are recomputed on every Apply.
type Entry struct {
	candidate.Scored

	Position int   `json:"position"`
	Top      bool  `json:"top"`
	Badge    Badge `json:"badge"`
}

// View is a filtered and sorted candidate list.
type View struct {
	Entries []Entry `json:"entries"`
	// Total is the number of candidates before filtering.
	Total int `json:"total"`
}

func (v *View) Len() int {
	return len(v.Entries)
}

// MatchesQuery reports whether the query is empty or found in the candidate
// name or in one of its skills.
func MatchesQuery(c *candidate.Scored, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}

// MeetsThreshold reports whether the candidate score is at least minScore.
func MeetsThreshold(c *candidate.Scored, minScore int) bool {
	return c.Score >= minScore
}

// Filter returns the candidates passing both the query and the threshold,
// in their original order. The input is not modified.
func Filter(candidates []candidate.Scored, query string, minScore int) []candidate.Scored {
	out := make([]candidate.Scored, 0, len(candidates))
	for i := range candidates {
		if MatchesQuery(&candidates[i], query) && MeetsThreshold(&candidates[i], minScore) {
			out = append(out, candidates[i])
		}
	}
	return out
}

// Sort orders candidates in place with a stable sort. Ties on the key are
// broken by collated name and then by id.
func Sort(candidates []candidate.Scored, key SortKey, locale language.Tag) {
	collator := collate.New(locale)
	byName := func(a, b *candidate.Scored) int {
		return collator.CompareString(a.Name, b.Name)
	}

	slices.SortStableFunc(candidates, func(a, b candidate.Scored) int {
		var primary int
		switch key {
		case SortByExperience:
			primary = cmp.Compare(b.Experience, a.Experience)
		case SortByName:
			primary = byName(&a, &b)
		default:
			primary = cmp.Compare(b.Score, a.Score)
		}
		if primary != 0 {
			return primary
		}
		if byNameCmp := byName(&a, &b); byNameCmp != 0 {
			return byNameCmp
		}
		return compareIDs(a.ID, b.ID)
	})
}

// Apply filters, sorts and labels candidates. The input is not modified.
func Apply(candidates []candidate.Scored, opts Options) View {
	filtered := Filter(candidates, opts.Query, opts.MinScore)
	Sort(filtered, opts.SortBy, opts.Locale)

	return View{
		Entries: Label(filtered),
		Total:   len(candidates),
	}
}

// Label wraps already ordered candidates into entries with positions, top
// markers and badges.
func Label(ordered []candidate.Scored) []Entry {
	entries := make([]Entry, 0, len(ordered))
	for i, c := range ordered {
		entries = append(entries, Entry{
			Scored:   c,
			Position: i + 1,
			Top:      i < TopN,
			Badge:    BadgeFor(c.Score),
		})
	}
	return entries
}

// compareIDs orders integer ids numerically before all other ids, which
// compare as strings.
func compareIDs(a, b string) int {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(ai, bi)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
