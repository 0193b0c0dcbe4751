package candidate

import "strings"

// Education is a degree level. Unknown values are kept verbatim and rank 0.
type Education string

const (
	EducationNone       Education = ""
	EducationHighSchool Education = "high-school"
	EducationAssociate  Education = "associate"
	EducationBachelor   Education = "bachelor"
	EducationMaster     Education = "master"
	EducationPhD        Education = "phd"
)

var educationRank = map[Education]int{
	EducationHighSchool: 1,
	EducationAssociate:  2,
	EducationBachelor:   3,
	EducationMaster:     4,
	EducationPhD:        5,
}

// Levels returns the known education levels in ascending order.
func Levels() []Education {
	return []Education{
		EducationHighSchool,
		EducationAssociate,
		EducationBachelor,
		EducationMaster,
		EducationPhD,
	}
}

// ParseEducation normalizes a raw education string. It never fails.
func ParseEducation(s string) Education {
	return Education(strings.ToLower(strings.TrimSpace(s)))
}

// Rank maps the level to 1..5, or 0 when the level is unset or unknown.
func (e Education) Rank() int {
	return educationRank[e]
}

// Known reports whether e is one of the recognized levels.
func (e Education) Known() bool {
	return e.Rank() > 0
}

func (e Education) String() string {
	return string(e)
}
