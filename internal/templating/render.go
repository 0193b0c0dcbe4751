// Package templating personalizes message templates with {{key}} placeholders.
//
// Substitution is literal and happens in a single left-to-right pass: values
// are never scanned for placeholders again, and unknown placeholders are left
// in the output as written.
package templating

import (
	"maps"
	"regexp"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Context maps placeholder names to their values.
type Context map[string]string

// Merge returns a new context with the entries of other layered over c.
func (c Context) Merge(other Context) Context {
	out := make(Context, len(c)+len(other))
	maps.Copy(out, c)
	maps.Copy(out, other)
	return out
}

// Render substitutes every known placeholder in tpl.
func Render(tpl string, ctx Context) string {
	return placeholderPattern.ReplaceAllStringFunc(tpl, func(match string) string {
		key := match[2 : len(match)-2]
		if value, ok := ctx[key]; ok {
			return value
		}
		return match
	})
}

// Placeholders lists the distinct placeholder names of tpl in order of first appearance.
func Placeholders(tpl string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(tpl, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Missing lists the placeholders of tpl that ctx has no value for.
func Missing(tpl string, ctx Context) []string {
	var missing []string
	for _, name := range Placeholders(tpl) {
		if _, ok := ctx[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
