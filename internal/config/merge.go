package config

import (
	"maps"
	"slices"
)

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global
	merged.overlay(local)
	return &merged
}

// overlay applies every set field of local onto c.
// Slices are replaced, never appended to in place.
func (c *Config) overlay(local *LocalConfig) {
	setString(&c.ActiveDoc, local.ActiveDoc)
	setString(&c.ArchiveDir, local.ArchiveDir)
	setString(&c.SnapshotExt, local.SnapshotExt)
	setString(&c.SnapshotFormat, local.SnapshotFormat)
	setString(&c.Template, local.Template)
	setString(&c.OutputFormat, local.OutputFormat)
	if local.DocPatterns != nil {
		c.DocPatterns = slices.Clone(local.DocPatterns)
	}

	s := local.Snapshot
	setString(&c.Snapshot.Version, s.Version)
	setString(&c.Snapshot.Title, s.Title)
	setString(&c.Snapshot.Description, s.Description)
	if s.Tags != nil {
		c.Snapshot.Tags = slices.Clone(s.Tags)
	}
	if s.Changes != nil {
		c.Snapshot.Changes = slices.Clone(s.Changes)
	}
	if s.NextActions != nil {
		c.Snapshot.NextActions = slices.Clone(s.NextActions)
	}
	if s.Dependencies != nil {
		c.Snapshot.Dependencies = slices.Clone(s.Dependencies)
	}

	// Merge hooks by name: local overrides/adds, enabled=false removes
	c.Hooks = mergeHooks(c.Hooks, local.Hooks)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// mergeHooks merges local hooks into global hooks.
// Local hooks with the same name override global hooks.
// Local hooks with enabled=false remove the global hook.
func mergeHooks(global, local HooksConfig) HooksConfig {
	merged := HooksConfig{
		Hooks: make(map[string]Hook, len(global.Hooks)),
	}

	maps.Copy(merged.Hooks, global.Hooks)

	for name, hook := range local.Hooks {
		if !hook.IsEnabled() {
			delete(merged.Hooks, name)
			continue
		}
		merged.Hooks[name] = hook
	}

	return merged
}
