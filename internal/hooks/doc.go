// Package hooks runs user-defined shell commands after mementor operations
// and decides when the pre-commit snapshot should fire.
//
// # Hook Selection
//
// Hooks can run automatically or manually:
//
//   - Automatic: Hooks with "on" config matching the trigger run automatically
//   - Manual: "mementor hook NAME" runs a hook regardless of "on"
//
// Example config:
//
//	[hooks.notify]
//	command = "notify-send 'snapshot written' {snapshot}"
//	on = ["snapshot"]
//
//	[hooks.lint]
//	command = "markdownlint {doc}"
//	on = ["precommit"]
//
// # Placeholder Substitution
//
// Static placeholders available in all hooks:
//
//   - {doc}: Absolute path of the active document
//   - {snapshot}: Absolute path of the snapshot just written (empty if none)
//   - {repo}: Repository root
//   - {trigger}: Operation that triggered the hook (snapshot, precommit, run)
//
// Custom variables via --arg key=value:
//
//   - {key}: Value from --arg key=value
//   - {key:raw}: Value without shell quoting
//   - {key:-default}: Value with fallback if not provided
//
// Hooks run with the working directory set to the repository root.
//
// # Stdin Support
//
// Use --arg key=- to read stdin content into a variable:
//
//	echo "release notes" | mementor hook publish --arg notes=-
//
// # Pre-commit
//
// [HasDocChanges] reports whether any staged path matches the configured
// doc_patterns. [Install] writes a git pre-commit hook that runs
// "mementor precommit".
package hooks
