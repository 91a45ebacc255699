package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo config file at the repository root.
const LocalConfigFileName = ".mementor.toml"

// LocalConfig holds per-repo configuration overrides from .mementor.toml.
// Zero-value strings and nil slices indicate "not set" (inherit from global).
type LocalConfig struct {
	ActiveDoc      string
	ArchiveDir     string
	SnapshotExt    string
	SnapshotFormat string
	Template       string
	OutputFormat   string
	DocPatterns    []string       // replaces global patterns
	Snapshot       SnapshotConfig // non-empty fields replace global values
	Hooks          HooksConfig    // merge by name into global
}

// IsEnabled reports whether the hook is active. Hooks are enabled unless
// explicitly set to false.
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

func rawToLocal(raw rawConfig) *LocalConfig {
	return &LocalConfig{
		ActiveDoc:      raw.ActiveDoc,
		ArchiveDir:     raw.ArchiveDir,
		SnapshotExt:    raw.SnapshotExt,
		SnapshotFormat: raw.SnapshotFormat,
		Template:       raw.Template,
		OutputFormat:   raw.OutputFormat,
		DocPatterns:    raw.DocPatterns,
		Snapshot:       raw.Snapshot,
		Hooks:          parseHooksConfig(raw.Hooks),
	}
}

// LoadLocal reads a per-repo .mementor.toml config from the given repo path.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	local := rawToLocal(raw)
	if err := local.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}

	return local, nil
}

// defaultLocalConfig is the template for mementor config init --local
const defaultLocalConfig = `# mementor local config (per-repo overrides)
# Place this file at the root of your repository as .mementor.toml.
# Settings here override the global ~/.config/mementor/config.toml for this repo only.

# active_doc = "docs/mementor_docs/activeContext.md"
# archive_dir = "docs/mementor_docs/archives"
# snapshot_ext = ".md"
# snapshot_format = "{doc}_{timestamp}"
# template = "docs/templates/snapshot.md.tmpl"

# Replaces the global patterns
# doc_patterns = ['^docs/.*\.md$']

# [snapshot]
# version = "1.2.0"
# tags = ["documentation"]
# next_actions = ["Document the release process"]

# Hooks - add repo-specific hooks or override global hooks
# Set enabled = false to disable a global hook for this repo
#
# [hooks.lint]
# command = "markdownlint {doc}"
# description = "Lint the active document"
# on = ["precommit"]
#
# [hooks.global-hook-name]
# enabled = false  # Disable this global hook for this repo
`

// DefaultLocalConfig returns the default local configuration template content.
func DefaultLocalConfig() string {
	return defaultLocalConfig
}
