// Package snapshot writes timestamped snapshots of the active document's
// state into the archive directory.
//
// A snapshot is a Markdown file with a YAML front-matter header carrying
// [Metadata] (including the document's health metrics) followed by a body
// rendered from a [Template]:
//
//	---
//	id: 6f1c...
//	version: 0.1.0
//	created_at: 2025-03-07T14:30:15Z
//	health:
//	  word_count: 412
//	  ...
//	---
//
//	# Documentation Snapshot
//	...
//
// Templates use text/template syntax. The builtin "snapshot" template is
// embedded; a custom template file can be configured with the template key.
//
// Snapshots are written to <archive>/<year>/<name><ext>, where the name comes
// from the snapshot_format setting (see package format).
package snapshot
