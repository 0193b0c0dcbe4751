package templating

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
)

//go:embed templates/*.txt
var builtinFS embed.FS

// Template is a subject and body pair sharing one placeholder context.
type Template struct {
	Name    string `mapstructure:"name" json:"name"`
	Subject string `mapstructure:"subject" json:"subject"`
	Body    string `mapstructure:"body" json:"body"`
}

// Message is a rendered template.
type Message struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// RenderMessage renders subject and body with the same context.
func RenderMessage(t Template, ctx Context) Message {
	return Message{
		Subject: Render(t.Subject, ctx),
		Body:    Render(t.Body, ctx),
	}
}

// Placeholders lists the distinct placeholders used by subject and body.
func (t Template) Placeholders() []string {
	return Placeholders(t.Subject + "\n" + t.Body)
}

// Missing lists the placeholders of subject and body that ctx has no value for.
func (t Template) Missing(ctx Context) []string {
	return Missing(t.Subject+"\n"+t.Body, ctx)
}

// Validate checks that the template has something to render.
func (t Template) Validate() error {
	if strings.TrimSpace(t.Subject) == "" {
		return fmt.Errorf("template %q: subject is empty", t.Name)
	}
	if strings.TrimSpace(t.Body) == "" {
		return fmt.Errorf("template %q: body is empty", t.Name)
	}
	return nil
}

// Builtin returns a bundled template by name.
func Builtin(name string) (Template, error) {
	raw, err := builtinFS.ReadFile(path.Join("templates", name+".txt"))
	if err != nil {
		return Template{}, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return parseTemplate(name, string(raw))
}

// BuiltinNames lists the bundled templates in alphabetical order.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	slices.Sort(names)
	return names
}

// parseTemplate reads the bundled format: the first line is the subject,
// followed by a blank line and the body.
func parseTemplate(name, raw string) (Template, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	subject, body, ok := strings.Cut(raw, "\n\n")
	if !ok {
		return Template{}, fmt.Errorf("template %q: missing blank line after subject", name)
	}
	t := Template{
		Name:    name,
		Subject: strings.TrimSpace(subject),
		Body:    strings.TrimRight(body, "\n"),
	}
	return t, t.Validate()
}
