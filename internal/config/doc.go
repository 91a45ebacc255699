// Package config handles loading and validation of mementor configuration.
//
// Configuration is layered, highest priority first:
//
//   - MEMENTOR_* environment variables
//   - MEMENTOR_* entries in a .env file at the repository root
//   - .mementor.toml at the repository root (project config)
//   - ~/.config/mementor/config.toml (global config)
//   - Default values
//
// # Key Settings
//
//   - active_doc: Document analyzed and snapshotted (default "docs/mementor_docs/activeContext.md")
//   - archive_dir: Where snapshots are written (default "<active_doc dir>/archives")
//   - snapshot_ext: Extension of snapshot files (default ".md")
//   - snapshot_format: File name template (default "snapshot_{timestamp}")
//   - template: Optional snapshot template file; the builtin template is used otherwise
//   - output_format: "table", "json" or "yaml"
//   - doc_patterns: Regular expressions for staged paths that trigger a pre-commit snapshot
//
// Relative paths are resolved against the repository root.
//
// # Snapshot Context
//
// The [snapshot] section supplies the metadata and prose rendered into each
// snapshot:
//
//	[snapshot]
//	version = "0.1.0"
//	tags = ["documentation", "snapshot"]
//	next_actions = ["Add snapshot comparison"]
//
//	[[snapshot.dependencies]]
//	name = "go"
//	version = "1.25"
//
// # Hooks Configuration
//
// Hooks are defined in [hooks.NAME] sections:
//
//	[hooks.notify]
//	command = "notify-send 'snapshot written' {snapshot}"
//	on = ["snapshot"]
//
// Hooks with "on" run automatically after matching operations ("snapshot",
// "precommit" or "all"). Hooks without "on" only run via "mementor hook NAME".
// A project config can disable a global hook with enabled = false.
package config
