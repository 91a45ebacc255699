package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults for unset configuration values.
const (
	DefaultActiveDoc      = "docs/mementor_docs/activeContext.md"
	DefaultSnapshotExt    = ".md"
	DefaultSnapshotFormat = "snapshot_{timestamp}"
	DefaultOutputFormat   = "table"
	DefaultVersion        = "0.1.0"
	archivesDirName       = "archives"
)

// DefaultDocPatterns select staged files that count as documentation changes.
var DefaultDocPatterns = []string{
	`^docs/.*\.(md|rst|txt)$`,
	`^README\.md$`,
	`^CHANGELOG\.md$`,
	`^CONTRIBUTING\.md$`,
}

// Hook defines a shell command run after mementor operations
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"`      // triggers this hook runs on (empty = only via mementor hook)
	Enabled     *bool    `toml:"enabled"` // false in a project config removes a global hook
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook `toml:"-"` // parsed from [hooks.NAME] sections
}

// Dependency is a named, versioned dependency listed in snapshot metadata.
type Dependency struct {
	Name    string `toml:"name" json:"name" yaml:"name"`
	Version string `toml:"version" json:"version" yaml:"version"`
}

// SnapshotConfig holds the metadata and prose rendered into snapshots.
type SnapshotConfig struct {
	Version      string       `toml:"version"`
	Title        string       `toml:"title"`
	Description  string       `toml:"description"`
	Tags         []string     `toml:"tags"`
	Changes      []string     `toml:"changes"`
	NextActions  []string     `toml:"next_actions"`
	Dependencies []Dependency `toml:"dependencies"`
}

// Config holds the mementor configuration
type Config struct {
	ActiveDoc      string         `toml:"active_doc"`
	ArchiveDir     string         `toml:"archive_dir"`
	SnapshotExt    string         `toml:"snapshot_ext"`
	SnapshotFormat string         `toml:"snapshot_format"`
	Template       string         `toml:"template"`
	OutputFormat   string         `toml:"output_format"`
	DocPatterns    []string       `toml:"doc_patterns"`
	Snapshot       SnapshotConfig `toml:"snapshot"`
	Hooks          HooksConfig    `toml:"-"` // custom parsing needed
}

// Default returns the default configuration
func Default() Config {
	return Config{
		ActiveDoc:      DefaultActiveDoc,
		SnapshotExt:    DefaultSnapshotExt,
		SnapshotFormat: DefaultSnapshotFormat,
		OutputFormat:   DefaultOutputFormat,
		DocPatterns:    append([]string(nil), DefaultDocPatterns...),
		Snapshot: SnapshotConfig{
			Version:     DefaultVersion,
			Title:       "Documentation Snapshot",
			Description: "Current state of project documentation",
			Tags:        []string{"documentation", "snapshot"},
		},
		Hooks: HooksConfig{Hooks: map[string]Hook{}},
	}
}

// DocPath returns the absolute path of the active document under root.
func (c *Config) DocPath(root string) string {
	return resolvePath(root, c.ActiveDoc)
}

// ArchivePath returns the absolute snapshot archive directory under root.
// Defaults to an "archives" directory next to the active document.
func (c *Config) ArchivePath(root string) string {
	if c.ArchiveDir != "" {
		return resolvePath(root, c.ArchiveDir)
	}
	return filepath.Join(filepath.Dir(c.DocPath(root)), archivesDirName)
}

// TemplatePath returns the absolute template path, or "" for the builtin template.
func (c *Config) TemplatePath(root string) string {
	if c.Template == "" {
		return ""
	}
	return resolvePath(root, c.Template)
}

// resolvePath expands ~ and joins relative paths onto root.
func resolvePath(root, path string) string {
	expanded, err := expandPath(path)
	if err == nil {
		path = expanded
	}
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// GlobalPath returns the path to the global config file.
// MEMENTOR_CONFIG overrides the default location.
func GlobalPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mementor", "config.toml"), nil
}

// rawConfig is used for initial TOML parsing before processing hooks
type rawConfig struct {
	ActiveDoc      string         `toml:"active_doc"`
	ArchiveDir     string         `toml:"archive_dir"`
	SnapshotExt    string         `toml:"snapshot_ext"`
	SnapshotFormat string         `toml:"snapshot_format"`
	Template       string         `toml:"template"`
	OutputFormat   string         `toml:"output_format"`
	DocPatterns    []string       `toml:"doc_patterns"`
	Snapshot       SnapshotConfig `toml:"snapshot"`
	Hooks          map[string]any `toml:"hooks"`
}

// Load reads the global config.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file, filling unset values from Default().
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Default()
	cfg.overlay(rawToLocal(raw))

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// parseHooksConfig extracts HooksConfig from raw TOML map
// Handles [hooks.NAME] sections
func parseHooksConfig(raw map[string]any) HooksConfig {
	hc := HooksConfig{
		Hooks: make(map[string]Hook),
	}

	for key, value := range raw {
		hookMap, ok := value.(map[string]any)
		if !ok {
			continue
		}
		hook := Hook{}
		if cmd, ok := hookMap["command"].(string); ok {
			hook.Command = cmd
		}
		if desc, ok := hookMap["description"].(string); ok {
			hook.Description = desc
		}
		if on, ok := hookMap["on"].([]any); ok {
			for _, v := range on {
				if s, ok := v.(string); ok {
					hook.On = append(hook.On, s)
				}
			}
		}
		if enabled, ok := hookMap["enabled"].(bool); ok {
			hook.Enabled = &enabled
		}
		hc.Hooks[key] = hook
	}

	return hc
}

// Init writes the default config file to path.
// If force is true, overwrites an existing file.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}

// DefaultConfig returns the commented default configuration file content.
func DefaultConfig() string {
	return defaultConfig
}

const defaultConfig = `# mementor configuration
# Global: ~/.config/mementor/config.toml
# Project: .mementor.toml at the repository root (overrides global)

# Document analyzed by "mementor analyze" and snapshotted by "mementor snapshot".
# Relative paths are resolved against the repository root.
active_doc = "docs/mementor_docs/activeContext.md"

# Where snapshots are written. Snapshots go into a per-year subdirectory.
# Defaults to an "archives" directory next to active_doc.
# archive_dir = "docs/mementor_docs/archives"

# Extension of snapshot files. Also used to find the latest prior snapshot.
snapshot_ext = ".md"

# Snapshot file name. Placeholders:
#   {timestamp} - 20060102_150405
#   {date}      - 2006-01-02
#   {year}      - 2006
#   {doc}       - active document name without extension
snapshot_format = "snapshot_{timestamp}"

# Optional Go text/template file for the snapshot body.
# template = "templates/snapshot.md.tmpl"

# Default output format for analyze/report: table, json or yaml
output_format = "table"

# Staged paths (regular expressions) that trigger a pre-commit snapshot
doc_patterns = [
  '^docs/.*\.(md|rst|txt)$',
  '^README\.md$',
  '^CHANGELOG\.md$',
  '^CONTRIBUTING\.md$',
]

[snapshot]
version = "0.1.0"
title = "Documentation Snapshot"
description = "Current state of project documentation"
tags = ["documentation", "snapshot"]
# changes = ["Updated template system"]
# next_actions = ["Add snapshot comparison tools"]

# [[snapshot.dependencies]]
# name = "go"
# version = "1.25"

# Hooks - run shell commands after mementor operations
#
# [hooks.notify]
# command = "notify-send 'snapshot' {snapshot}"
# description = "Desktop notification"
# on = ["snapshot"]   # snapshot, precommit or all
#
# [hooks.open]
# command = "$EDITOR {snapshot}"
# # no "on" - only runs via: mementor hook open
#
# Placeholders:
#   {doc}        - active document path
#   {snapshot}   - snapshot path (empty when none was written)
#   {repo}       - repository root
#   {trigger}    - snapshot, precommit or run
#   {key}        - custom variable passed via --arg key=value
#   {key:-def}   - custom variable with default
`
