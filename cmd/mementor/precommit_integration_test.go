//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/git"
	"github.com/mementor/mementor/internal/hooks"
)

// TestPrecommit_StagesSnapshot verifies staged docs trigger a snapshot.
//
// Scenario: User commits a change to docs/ with the hook installed
// Expected: Snapshot written and added to the index
func TestPrecommit_StagesSnapshot(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	runGit(t, repoPath, "add", "docs")

	cfg := config.Default()
	ctx, out := testContext(t, repoPath, &cfg)

	if err := runCommand(ctx, newPrecommitCmd()); err != nil {
		t.Fatalf("precommit failed: %v", err)
	}

	files := snapshotFiles(t, cfg.ArchivePath(repoPath))
	if len(files) != 1 {
		t.Fatalf("snapshots = %v, want 1", files)
	}
	rel, _ := filepath.Rel(repoPath, files[0])

	staged := runGit(t, repoPath, "diff", "--cached", "--name-only")
	if !strings.Contains(staged, filepath.ToSlash(rel)) {
		t.Errorf("snapshot %s not staged:\n%s", rel, staged)
	}
	if !strings.Contains(out.String(), "Created snapshot "+rel) {
		t.Errorf("unexpected output: %s", out.String())
	}
}

// TestPrecommit_NoDocChanges verifies commits without docs are skipped.
//
// Scenario: Only source files are staged
// Expected: Skip message, no snapshot, exit 0
func TestPrecommit_NoDocChanges(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	writeFile(t, filepath.Join(repoPath, "main.go"), "package main\n")
	runGit(t, repoPath, "add", "main.go")

	cfg := config.Default()
	ctx, out := testContext(t, repoPath, &cfg)

	if err := runCommand(ctx, newPrecommitCmd()); err != nil {
		t.Fatalf("precommit failed: %v", err)
	}
	if !strings.Contains(out.String(), "skipping snapshot") {
		t.Errorf("unexpected output: %s", out.String())
	}
	if files := snapshotFiles(t, cfg.ArchivePath(repoPath)); len(files) != 0 {
		t.Errorf("snapshots = %v, want none", files)
	}
}

// TestPrecommit_FailingHookAborts verifies precommit hook failures fail the command.
//
// Scenario: A hook with on=["precommit"] exits non-zero
// Expected: precommit returns an error
func TestPrecommit_FailingHookAborts(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	runGit(t, repoPath, "add", "docs")

	cfg := config.Default()
	cfg.Hooks = config.HooksConfig{Hooks: map[string]config.Hook{
		"fail": {Command: "exit 3", On: []string{"precommit"}},
	}}
	ctx, _ := testContext(t, repoPath, &cfg)

	if err := runCommand(ctx, newPrecommitCmd()); err == nil {
		t.Fatal("expected error from failing hook")
	}
}

// TestPrecommit_Install verifies the git hook installation.
//
// Scenario: User runs `mementor precommit --install` twice, then with a foreign hook
// Expected: Reinstall succeeds, a foreign hook needs --force
func TestPrecommit_Install(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	ctx, out := testContext(t, repoPath, nil)
	hooksDir := filepath.Join(repoPath, ".git", "hooks")

	for range 2 {
		if err := runCommand(ctx, newPrecommitCmd(), "--install"); err != nil {
			t.Fatalf("install failed: %v", err)
		}
	}
	if !hooks.IsInstalled(hooksDir) {
		t.Fatal("hook not installed")
	}
	if !strings.Contains(out.String(), "Installed ") {
		t.Errorf("unexpected output: %s", out.String())
	}

	hookPath := filepath.Join(hooksDir, hooks.PreCommitHookName)
	if err := os.WriteFile(hookPath, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}

	err := runCommand(ctx, newPrecommitCmd(), "--install")
	if !errors.Is(err, hooks.ErrHookExists) {
		t.Fatalf("err = %v, want ErrHookExists", err)
	}
	if err := runCommand(ctx, newPrecommitCmd(), "--install", "--force"); err != nil {
		t.Fatalf("forced install failed: %v", err)
	}
	if !hooks.IsInstalled(hooksDir) {
		t.Error("forced install did not replace the hook")
	}
}

// TestPrecommit_OutsideRepo verifies precommit needs a repository.
func TestPrecommit_OutsideRepo(t *testing.T) {
	t.Parallel()

	ctx, _ := testContext(t, resolvePath(t, t.TempDir()), nil)

	err := runCommand(ctx, newPrecommitCmd())
	if !errors.Is(err, git.ErrNotRepo) {
		t.Fatalf("err = %v, want ErrNotRepo", err)
	}
}
