package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	builtin, ok := r.Get(BuiltinName)
	require.True(t, ok)
	assert.NotEmpty(t, builtin.Content)

	r.Register(Template{Name: "alpha", Content: "a"})
	r.Register(Template{Name: "alpha", Content: "b"})

	got, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "b", got.Content, "Register replaces by name")

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"alpha", BuiltinName}, r.Names())
}

func TestTemplate_Render(t *testing.T) {
	t.Parallel()

	tmpl := Template{
		Name:    "t",
		Content: `{{ range .Items }}- [{{ check .Completed }}] {{ .Description }}{{ "\n" }}{{ end }}{{ join .Tags ", " }}`,
	}

	got, err := tmpl.Render(struct {
		Items []Item
		Tags  []string
	}{
		Items: []Item{{Description: "done", Completed: true}, {Description: "open"}},
		Tags:  []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "- [✓] done\n- [ ] open\na, b", got)
}

func TestTemplate_RenderErrors(t *testing.T) {
	t.Parallel()

	_, err := Template{Name: "bad", Content: "{{ .Missing"}.Render(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template bad")

	_, err = Template{Name: "strict", Content: "{{ .absent }}"}.Render(map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render template strict")
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("# {{ .Title }}\n"), 0o644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, path, tmpl.Name)

	out, err := tmpl.Render(Context{Title: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n", out)

	_, err = LoadTemplate(filepath.Join(t.TempDir(), "missing.tmpl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
