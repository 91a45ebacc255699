//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
)

// testDoc is an active document with sections, a checklist and links.
const testDoc = `# Active Context

Work is going well. The parser is done!

## Current State
- [X] parser
- [ ] renderer

## Links
See [guide](./guide.md) and [gone](gone.md).
`

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with an initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGit(t, repoPath, "init")
	runGit(t, repoPath, "config", "user.email", "test@test.com")
	runGit(t, repoPath, "config", "user.name", "Test User")
	runGit(t, repoPath, "config", "commit.gpgsign", "false")

	writeFile(t, filepath.Join(repoPath, "README.md"), "# "+name+"\n")
	runGit(t, repoPath, "add", "README.md")
	runGit(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// setupDocRepo creates a repo holding testDoc as the default active document
// and guide.md next to it.
func setupDocRepo(t *testing.T) string {
	t.Helper()

	repoPath := setupTestRepo(t, t.TempDir(), "docs-repo")
	cfg := config.Default()
	doc := cfg.DocPath(repoPath)
	writeFile(t, doc, testDoc)
	writeFile(t, filepath.Join(filepath.Dir(doc), "guide.md"), "# Guide\n")
	return repoPath
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// testContext returns a context with a quiet logger, a buffered printer and
// a resolver over cfg, working in workDir.
func testContext(t *testing.T, workDir string, cfg *config.Config) (context.Context, *bytes.Buffer) {
	t.Helper()

	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	var out bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &out)
	ctx = config.WithResolver(ctx, config.NewResolver(cfg))
	ctx = config.WithWorkDir(ctx, workDir)
	return ctx, &out
}

// runCommand executes cmd with args in ctx.
func runCommand(ctx context.Context, cmd *cobra.Command, args ...string) error {
	cmd.SetContext(ctx)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

// snapshotFiles lists the snapshots written under archive.
func snapshotFiles(t *testing.T, archive string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(archive, "*", "*.md"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}
