package config

import "testing"

func TestMergeLocal_Nil(t *testing.T) {
	t.Parallel()

	global := Default()
	if got := MergeLocal(&global, nil); got != &global {
		t.Error("MergeLocal(nil) should return global unchanged")
	}
}

func TestMergeLocal_Overrides(t *testing.T) {
	t.Parallel()

	global := Default()
	global.Hooks.Hooks["notify"] = Hook{Command: "notify-send done", On: []string{"snapshot"}}
	global.Hooks.Hooks["keep"] = Hook{Command: "true"}

	disabled := false
	local := &LocalConfig{
		ActiveDoc:   "CONTEXT.md",
		DocPatterns: []string{`^CONTEXT\.md$`},
		Snapshot: SnapshotConfig{
			Version: "3.0.0",
			Tags:    []string{"local"},
		},
		Hooks: HooksConfig{Hooks: map[string]Hook{
			"notify": {Enabled: &disabled},
			"lint":   {Command: "markdownlint {doc}"},
		}},
	}

	merged := MergeLocal(&global, local)

	if merged.ActiveDoc != "CONTEXT.md" {
		t.Errorf("ActiveDoc = %q", merged.ActiveDoc)
	}
	if merged.SnapshotExt != DefaultSnapshotExt {
		t.Errorf("SnapshotExt = %q, want inherited default", merged.SnapshotExt)
	}
	if len(merged.DocPatterns) != 1 {
		t.Errorf("DocPatterns = %v, want replaced", merged.DocPatterns)
	}
	if merged.Snapshot.Version != "3.0.0" {
		t.Errorf("Snapshot.Version = %q", merged.Snapshot.Version)
	}
	if merged.Snapshot.Title != global.Snapshot.Title {
		t.Errorf("Snapshot.Title = %q, want inherited", merged.Snapshot.Title)
	}

	if _, ok := merged.Hooks.Hooks["notify"]; ok {
		t.Error("disabled hook should be removed")
	}
	if _, ok := merged.Hooks.Hooks["keep"]; !ok {
		t.Error("global hook should be inherited")
	}
	if _, ok := merged.Hooks.Hooks["lint"]; !ok {
		t.Error("local hook should be added")
	}

	// Global is untouched
	if global.ActiveDoc != DefaultActiveDoc {
		t.Errorf("global ActiveDoc mutated to %q", global.ActiveDoc)
	}
	if _, ok := global.Hooks.Hooks["notify"]; !ok {
		t.Error("global hooks mutated")
	}
	if len(global.DocPatterns) != len(DefaultDocPatterns) {
		t.Error("global DocPatterns mutated")
	}
}
