package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const activeContextTemplate = `# {{ .project_name }} Active Context
_Updated {{ .current_date }}_

## Decisions
{{ range .decisions }}- {{ . }}
{{ end }}`

func TestLoadContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"ctx.toml": "project_name = \"Mementor\"\ndecisions = [\"a\", \"b\"]\n",
		"ctx.yaml": "project_name: Mementor\ndecisions: [a, b]\n",
		"ctx.json": `{"project_name": "Mementor", "decisions": ["a", "b"]}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			data, err := LoadContext(path)
			require.NoError(t, err)
			assert.Equal(t, "Mementor", data["project_name"])
			assert.Len(t, data["decisions"], 2)
		})
	}
}

func TestLoadContext_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadContext(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "ctx.ini")
	require.NoError(t, os.WriteFile(bad, []byte("x=1"), 0o644))
	_, err = LoadContext(bad)
	assert.Error(t, err)
}

func TestRenderDocument(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "docs", "activeContext.md")
	now := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)

	content, err := RenderDocument(context.Background(), RenderOptions{
		Template: Template{Name: "active", Content: activeContextTemplate},
		Data: map[string]any{
			"project_name": "Mementor",
			"decisions":    []any{"Simplified templates"},
		},
		Output: out,
		Now:    now,
	})
	require.NoError(t, err)

	want := "# Mementor Active Context\n_Updated 2025-03-07_\n\n## Decisions\n- Simplified templates\n"
	assert.Equal(t, want, content)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestRenderDocument_KeepsCurrentDate(t *testing.T) {
	t.Parallel()

	content, err := RenderDocument(context.Background(), RenderOptions{
		Template: Template{Name: "d", Content: "{{ .current_date }}"},
		Data:     map[string]any{"current_date": "yesterday"},
		DryRun:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "yesterday", content)
}
