// Package format handles snapshot file name generation and path sanitization.
//
// Snapshot files are named using a configurable format string with
// placeholders that are substituted when the snapshot is written.
//
// # Format Placeholders
//
// Available placeholders for snapshot_format config:
//
//   - {timestamp}: Creation time as 20060102_150405
//   - {date}: Creation date as 2006-01-02
//   - {year}: Creation year
//   - {doc}: Active document file name without extension
//
// Default format is "snapshot_{timestamp}", creating files like
// "snapshot_20250307_143015.md".
//
// # Path Sanitization
//
// Substituted values are sanitized to create valid file names.
// Characters replaced with "-": / \ : * ? " < > |
//
// # Validation
//
// Use [ValidateFormat] to check format strings before use. It ensures:
//   - All placeholders are recognized
//   - At least one time placeholder is present, so successive snapshots get distinct names
package format
