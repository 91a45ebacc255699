package snapshot

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/mementor/mementor/internal/health"
)

// BuiltinName is the registry name of the embedded snapshot template.
const BuiltinName = "snapshot"

//go:embed templates/snapshot.md.tmpl
var builtinSnapshot string

// Template is a named text/template source.
type Template struct {
	Name    string
	Content string
}

// Builtin returns the embedded snapshot template.
func Builtin() Template {
	return Template{Name: BuiltinName, Content: builtinSnapshot}
}

// LoadTemplate reads a template file. The template is named after the file.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read template: %w", err)
	}
	return Template{Name: path, Content: string(data)}, nil
}

// funcs are available to every template.
var funcs = template.FuncMap{
	"check": func(done bool) string {
		if done {
			return health.CheckGlyph
		}
		return " "
	},
	"join": strings.Join,
	"date": func(t time.Time) string {
		return t.Format(time.DateTime)
	},
}

// Parse compiles the template. Missing map keys are an error.
func (t Template) Parse() (*template.Template, error) {
	tmpl, err := template.New(t.Name).Funcs(funcs).Option("missingkey=error").Parse(t.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", t.Name, err)
	}
	return tmpl, nil
}

// Render executes the template against data.
func (t Template) Render(data any) (string, error) {
	tmpl, err := t.Parse()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", t.Name, err)
	}
	return sb.String(), nil
}

// Registry holds templates by name.
type Registry map[string]Template

// NewRegistry returns a registry holding the builtin template.
func NewRegistry() Registry {
	r := Registry{}
	r.Register(Builtin())
	return r
}

// Register adds or replaces a template.
func (r Registry) Register(t Template) {
	r[t.Name] = t
}

// Get returns the template registered under name.
func (r Registry) Get(name string) (Template, bool) {
	t, ok := r[name]
	return t, ok
}

// Names returns the registered template names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
