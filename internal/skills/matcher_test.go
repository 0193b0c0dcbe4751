package skills

import (
	"reflect"
	"testing"
)

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		criterion string
		skill     string
		expect    bool
	}{
		{name: "criterion inside skill", criterion: "react", skill: "React.js", expect: true},
		{name: "java inside javascript", criterion: "java", skill: "javascript", expect: true},
		{name: "abbreviation is not a substring", criterion: "JavaScript", skill: "JS", expect: false},
		{name: "short skill inside criterion", criterion: "Node.js", skill: "node", expect: true},
		{name: "known false positive c++", criterion: "C", skill: "C++", expect: true},
		{name: "known false positive django", criterion: "Go", skill: "Django", expect: true},
		{name: "unrelated", criterion: "Python", skill: "Ruby", expect: false},
		{name: "case insensitive equality", criterion: "AWS", skill: "aws", expect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Matches(tt.criterion, tt.skill); got != tt.expect {
				t.Fatalf("Matches(%q, %q) = %v, expected %v", tt.criterion, tt.skill, got, tt.expect)
			}
		})
	}
}

func TestSatisfied(t *testing.T) {
	skills := []string{"React", "Node.js", "Python"}

	if !Satisfied("node", skills) {
		t.Fatalf("expected node to be satisfied")
	}
	if Satisfied("Kubernetes", skills) {
		t.Fatalf("did not expect Kubernetes to be satisfied")
	}
	if Satisfied("React", nil) {
		t.Fatalf("nothing is satisfied by an empty skill set")
	}
}

func TestMatchedKeepsCriteriaOrderAndCasing(t *testing.T) {
	criteria := []string{"AWS", "react", "Docker", "React"}
	got := Matched(criteria, []string{"react.js", "aws-cdk"})

	expect := []string{"AWS", "react", "React"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}
