//go:build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/snapshot"
)

// TestSnapshot_WritesArchive verifies a snapshot is written to the archive.
//
// Scenario: User runs `mementor snapshot`
// Expected: Snapshot with front matter under <archive>/<year>/, path printed
func TestSnapshot_WritesArchive(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	cfg := config.Default()
	ctx, out := testContext(t, repoPath, &cfg)

	if err := runCommand(ctx, newSnapshotCmd()); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	files := snapshotFiles(t, cfg.ArchivePath(repoPath))
	if len(files) != 1 {
		t.Fatalf("snapshots = %v, want 1", files)
	}
	if got := strings.TrimSpace(out.String()); got != files[0] {
		t.Errorf("printed %q, want %q", got, files[0])
	}

	content, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	meta, body, err := snapshot.Parse(content)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if meta.ID == "" || meta.Health.SectionCount != 3 {
		t.Errorf("metadata = %+v", meta)
	}
	if !strings.Contains(body, "parser") {
		t.Errorf("body missing state items:\n%s", body)
	}
}

// TestSnapshot_DryRun verifies nothing is written on dry run.
//
// Scenario: User runs `mementor snapshot -n`
// Expected: Snapshot content printed, archive untouched
func TestSnapshot_DryRun(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	cfg := config.Default()
	ctx, out := testContext(t, repoPath, &cfg)

	if err := runCommand(ctx, newSnapshotCmd(), "-n"); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	if !strings.HasPrefix(out.String(), "---\n") {
		t.Errorf("dry run should print the snapshot, got:\n%s", out.String())
	}
	if _, err := os.Stat(cfg.ArchivePath(repoPath)); !os.IsNotExist(err) {
		t.Error("dry run must not create the archive")
	}
}

// TestSnapshot_RunsHooks verifies snapshot hooks receive the snapshot path.
//
// Scenario: A hook with on=["snapshot"] is configured
// Expected: Hook runs after the snapshot with {snapshot} substituted
func TestSnapshot_RunsHooks(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	marker := filepath.Join(t.TempDir(), "snapshot-path")

	cfg := config.Default()
	cfg.Hooks = config.HooksConfig{Hooks: map[string]config.Hook{
		"record": {Command: "printf %s {snapshot} > " + marker, On: []string{"snapshot"}},
		"manual": {Command: "touch " + marker + ".manual"},
	}}
	ctx, _ := testContext(t, repoPath, &cfg)

	if err := runCommand(ctx, newSnapshotCmd()); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	got, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("hook did not run: %v", err)
	}
	files := snapshotFiles(t, cfg.ArchivePath(repoPath))
	if len(files) != 1 || string(got) != files[0] {
		t.Errorf("hook got %q, snapshots %v", got, files)
	}
	if _, err := os.Stat(marker + ".manual"); err == nil {
		t.Error("hook without snapshot trigger must not run")
	}
}

// TestSnapshot_UnknownHook verifies hooks are validated before writing.
//
// Scenario: User runs `mementor snapshot --hook=nope`
// Expected: Error, no snapshot written
func TestSnapshot_UnknownHook(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	cfg := config.Default()
	ctx, _ := testContext(t, repoPath, &cfg)

	if err := runCommand(ctx, newSnapshotCmd(), "--hook=nope"); err == nil {
		t.Fatal("expected error for unknown hook")
	}
	if files := snapshotFiles(t, cfg.ArchivePath(repoPath)); len(files) != 0 {
		t.Errorf("snapshots = %v, want none", files)
	}
}

// TestSnapshot_LocalConfig verifies .mementor.toml overrides are applied.
//
// Scenario: Repo config moves the archive and changes the name format
// Expected: Snapshot written with the local format in the local archive
func TestSnapshot_LocalConfig(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	writeFile(t, filepath.Join(repoPath, config.LocalConfigFileName), `archive_dir = "snapshots"
snapshot_format = "{doc}_{date}"
`)
	ctx, _ := testContext(t, repoPath, nil)

	if err := runCommand(ctx, newSnapshotCmd()); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	files := snapshotFiles(t, filepath.Join(repoPath, "snapshots"))
	if len(files) != 1 {
		t.Fatalf("snapshots = %v, want 1", files)
	}
	if !strings.HasPrefix(filepath.Base(files[0]), "activeContext_") {
		t.Errorf("snapshot name = %s", filepath.Base(files[0]))
	}
}
