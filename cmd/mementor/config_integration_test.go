//go:build integration

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/mementor/mementor/internal/config"
)

// TestConfigInit_Local verifies local config creation.
//
// Scenario: User runs `mementor config init --local` twice
// Expected: .mementor.toml created, second run fails without --force
func TestConfigInit_Local(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	ctx, _ := testContext(t, repoPath, nil)

	if err := runCommand(ctx, newConfigCmd(), "init", "--local"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	path := filepath.Join(repoPath, config.LocalConfigFileName)
	if _, err := config.LoadLocal(repoPath); err != nil {
		t.Fatalf("generated local config is invalid: %v", err)
	}

	err := runCommand(ctx, newConfigCmd(), "init", "--local")
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("err = %v, want hint to use --force", err)
	}
	if err := runCommand(ctx, newConfigCmd(), "init", "--local", "--force"); err != nil {
		t.Fatalf("forced config init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

// TestConfigInit_Stdout verifies the default config can be printed.
func TestConfigInit_Stdout(t *testing.T) {
	t.Parallel()

	ctx, out := testContext(t, resolvePath(t, t.TempDir()), nil)

	if err := runCommand(ctx, newConfigCmd(), "init", "--stdout"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if out.String() != config.DefaultConfig() {
		t.Errorf("printed config differs from default")
	}
}

// TestConfigShow_MergesLocal verifies show prints the effective config.
//
// Scenario: Repo overrides active_doc and adds a hook
// Expected: TOML output carries both
func TestConfigShow_MergesLocal(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	writeFile(t, filepath.Join(repoPath, config.LocalConfigFileName), `active_doc = "NOTES.md"

[hooks.lint]
command = "markdownlint {doc}"
on = ["precommit"]
`)
	ctx, out := testContext(t, repoPath, nil)

	if err := runCommand(ctx, newConfigCmd(), "show"); err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var shown struct {
		ActiveDoc string                    `toml:"active_doc"`
		Hooks     map[string]map[string]any `toml:"hooks"`
	}
	if _, err := toml.Decode(out.String(), &shown); err != nil {
		t.Fatalf("output is not TOML: %v\n%s", err, out.String())
	}
	if shown.ActiveDoc != "NOTES.md" {
		t.Errorf("active_doc = %q, want NOTES.md", shown.ActiveDoc)
	}
	if shown.Hooks["lint"]["command"] != "markdownlint {doc}" {
		t.Errorf("hooks = %v", shown.Hooks)
	}
}

// TestConfigHooks_JSON verifies hook listing with sources.
//
// Scenario: A global hook is overridden locally and a local hook is added
// Expected: JSON list sorted by name with sources
func TestConfigHooks_JSON(t *testing.T) {
	t.Parallel()

	repoPath := setupDocRepo(t)
	writeFile(t, filepath.Join(repoPath, config.LocalConfigFileName), `[hooks.publish]
command = "make publish"

[hooks.lint]
command = "make lint"
`)

	cfg := config.Default()
	cfg.OutputFormat = "json"
	cfg.Hooks = config.HooksConfig{Hooks: map[string]config.Hook{
		"publish": {Command: "echo publish"},
		"notify":  {Command: "echo notify"},
	}}
	ctx, out := testContext(t, repoPath, &cfg)

	if err := runCommand(ctx, newConfigCmd(), "hooks"); err != nil {
		t.Fatalf("config hooks failed: %v", err)
	}

	var infos []hookInfo
	if err := json.Unmarshal(out.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}

	want := []hookInfo{
		{Name: "lint", Source: "local", Command: "make lint"},
		{Name: "notify", Source: "global", Command: "echo notify"},
		{Name: "publish", Source: "local (override)", Command: "make publish"},
	}
	if len(infos) != len(want) {
		t.Fatalf("hooks = %+v, want %+v", infos, want)
	}
	for i := range want {
		if infos[i].Name != want[i].Name || infos[i].Source != want[i].Source || infos[i].Command != want[i].Command {
			t.Errorf("hooks[%d] = %+v, want %+v", i, infos[i], want[i])
		}
	}
}
