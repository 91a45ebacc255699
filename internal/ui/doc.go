// Package ui groups the terminal presentation components of mementor.
//
// Subpackages:
//
//   - styles: Color theme chosen from the detected terminal color profile
//   - static: Non-interactive tables for metrics, reports and doctor results
//   - progress: Progress bar for batch reports and completion bars
//
// All interactive output (progress) goes to stderr so stdout stays clean
// for piping JSON or YAML.
package ui
