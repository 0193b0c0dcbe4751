package templating

import (
	"slices"
	"testing"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tpl  string
		ctx  Context
		want string
	}{
		{
			name: "single placeholder",
			tpl:  "Hi {{name}}",
			ctx:  Context{"name": "Ada"},
			want: "Hi Ada",
		},
		{
			name: "missing key stays verbatim",
			tpl:  "Hi {{name}}",
			ctx:  Context{},
			want: "Hi {{name}}",
		},
		{
			name: "every occurrence replaced",
			tpl:  "{{company}} and {{company}} again",
			ctx:  Context{"company": "Acme"},
			want: "Acme and Acme again",
		},
		{
			name: "values are not rescanned",
			tpl:  "{{a}}-{{b}}",
			ctx:  Context{"a": "{{b}}", "b": "x"},
			want: "{{b}}-x",
		},
		{
			name: "malformed braces left alone",
			tpl:  "{{name} and {name}} and {{ }",
			ctx:  Context{"name": "Ada"},
			want: "{{name} and {name}} and {{ }",
		},
		{
			name: "keys are case sensitive",
			tpl:  "{{Name}}",
			ctx:  Context{"name": "Ada"},
			want: "{{Name}}",
		},
		{
			name: "empty value",
			tpl:  "skills: {{topSkills}}.",
			ctx:  Context{"topSkills": ""},
			want: "skills: .",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Render(tt.tpl, tt.ctx); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPlaceholdersAndMissing(t *testing.T) {
	t.Parallel()

	tpl := "{{position}} at {{company}}, {{candidateName}} - {{position}}"
	if got, want := Placeholders(tpl), []string{"position", "company", "candidateName"}; !slices.Equal(got, want) {
		t.Fatalf("placeholders: got %v, want %v", got, want)
	}

	missing := Missing(tpl, Context{"position": "Dev"})
	if want := []string{"company", "candidateName"}; !slices.Equal(missing, want) {
		t.Fatalf("missing: got %v, want %v", missing, want)
	}

	if got := Missing(tpl, Context{"position": "", "company": "", "candidateName": ""}); len(got) != 0 {
		t.Fatalf("expected nothing missing, got %v", got)
	}
}

func TestContextMerge(t *testing.T) {
	t.Parallel()

	base := Context{"a": "1", "b": "2"}
	merged := base.Merge(Context{"b": "3", "c": "4"})

	if merged["a"] != "1" || merged["b"] != "3" || merged["c"] != "4" {
		t.Fatalf("unexpected merge result: %v", merged)
	}
	if base["b"] != "2" || len(base) != 2 {
		t.Fatalf("base context was modified: %v", base)
	}
}
