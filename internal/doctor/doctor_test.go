package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/hooks"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/snapshot"
)

// setupRepo creates a git repository holding the default active document.
func setupRepo(t *testing.T) (string, *config.Config) {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	out, err := exec.Command("git", "init", "-q", root).CombinedOutput()
	require.NoError(t, err, "git init: %s", out)

	cfg := config.Default()
	doc := cfg.DocPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(doc), 0o755))
	require.NoError(t, os.WriteFile(doc, []byte("# Context\nsome words here\n"), 0o644))
	return root, &cfg
}

func issueActions(r *Result) []FixAction {
	var actions []FixAction
	for _, i := range r.Issues {
		actions = append(actions, i.FixAction)
	}
	return actions
}

func findCheck(t *testing.T, r *Result, name string) Check {
	t.Helper()
	for _, c := range r.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no %q check in %+v", name, r.Checks)
	return Check{}
}

func TestDiagnose_FreshRepo(t *testing.T) {
	t.Parallel()

	root, cfg := setupRepo(t)
	r := Diagnose(context.Background(), Options{Root: root, Config: cfg})

	require.Len(t, r.Issues, 2, "want archive and hook issues")
	assert.Equal(t, []FixAction{FixCreateArchive, FixInstallHook}, issueActions(r))
	assert.Len(t, r.Fixable(), 2)
}

func TestRun_FixThenClean(t *testing.T) {
	t.Parallel()

	root, cfg := setupRepo(t)

	var buf bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &buf)

	require.NoError(t, Run(ctx, Options{Root: root, Config: cfg, Fix: true}))
	assert.Contains(t, buf.String(), "Created "+cfg.ArchivePath(root))
	assert.True(t, hooks.IsInstalled(filepath.Join(root, ".git", "hooks")), "hook not installed")

	r := Diagnose(ctx, Options{Root: root, Config: cfg})
	assert.Empty(t, r.Issues)
	assert.Equal(t, "none yet", findCheck(t, r, "latest snapshot").Detail)
}

func TestRun_ReportsWithoutFixing(t *testing.T) {
	t.Parallel()

	root, cfg := setupRepo(t)

	var buf bytes.Buffer
	ctx := output.WithPrinter(context.Background(), &buf)

	require.NoError(t, Run(ctx, Options{Root: root, Config: cfg}))
	assert.Contains(t, buf.String(), "Found 2 issues")
	assert.Contains(t, buf.String(), "mementor doctor --fix")

	_, err := os.Stat(cfg.ArchivePath(root))
	assert.ErrorIs(t, err, os.ErrNotExist, "archive must not be created without --fix")
}

func TestDiagnose_LatestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("valid metadata", func(t *testing.T) {
		t.Parallel()

		root, cfg := setupRepo(t)
		res, err := snapshot.Create(context.Background(), snapshot.Options{Root: root, Config: cfg})
		require.NoError(t, err)

		r := Diagnose(context.Background(), Options{Root: root, Config: cfg})
		check := findCheck(t, r, "latest snapshot")
		assert.True(t, check.OK)
		assert.Contains(t, check.Detail, res.Path)
		assert.Contains(t, check.Detail, res.Metadata.ID)
	})

	t.Run("newest snapshot without header", func(t *testing.T) {
		t.Parallel()

		root, cfg := setupRepo(t)
		_, err := snapshot.Create(context.Background(), snapshot.Options{Root: root, Config: cfg})
		require.NoError(t, err)

		bad := filepath.Join(cfg.ArchivePath(root), "manual.md")
		require.NoError(t, os.WriteFile(bad, []byte("# Hand written\n"), 0o644))
		later := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(bad, later, later))

		r := Diagnose(context.Background(), Options{Root: root, Config: cfg})
		assert.False(t, findCheck(t, r, "latest snapshot").OK)

		var found bool
		for _, i := range r.Issues {
			if i.Key == bad {
				found = true
				assert.Equal(t, CategoryArchive, i.Category)
				assert.Equal(t, FixNone, i.FixAction)
				assert.Contains(t, i.Description, snapshot.ErrNoFrontMatter.Error())
			}
		}
		assert.True(t, found, "no issue for %s in %+v", bad, r.Issues)
	})
}

func TestDiagnose_MissingDocumentAndTemplate(t *testing.T) {
	t.Parallel()

	root, cfg := setupRepo(t)
	cfg.ActiveDoc = "missing.md"
	cfg.Template = "missing.tmpl"

	r := Diagnose(context.Background(), Options{Root: root, Config: cfg})

	docIssues := 0
	for _, i := range r.Issues {
		if i.Category == CategoryDocument {
			docIssues++
		}
	}
	assert.Equal(t, 2, docIssues, "want doc and template issues; issues: %+v", r.Issues)
}

func TestDiagnose_RegisteredTemplate(t *testing.T) {
	t.Parallel()

	root, cfg := setupRepo(t)
	cfg.Template = snapshot.BuiltinName

	r := Diagnose(context.Background(), Options{Root: root, Config: cfg})
	check := findCheck(t, r, "template")
	assert.True(t, check.OK)
	assert.Equal(t, snapshot.BuiltinName, check.Detail)
}

func TestDiagnose_ConfigError(t *testing.T) {
	t.Parallel()

	root, _ := setupRepo(t)
	r := Diagnose(context.Background(), Options{Root: root, ConfigErr: errors.New("bad toml")})

	last := r.Checks[len(r.Checks)-1]
	assert.Equal(t, "config", last.Name)
	assert.False(t, last.OK)
}

func TestDiagnose_NotARepo(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	r := Diagnose(context.Background(), Options{Config: &cfg})

	assert.Equal(t, "repository", r.Checks[1].Name)
	assert.False(t, r.Checks[1].OK)
	for _, c := range r.Checks {
		assert.NotEqual(t, "pre-commit hook", c.Name, "hook check needs a repository")
	}
}
