// Package health computes document health metrics for Markdown-like text.
//
// The analysis is deliberately surface-level: headings, links, checklists and
// code fences are found with line scans and regular expressions rather than a
// Markdown parser. Fenced code is not excluded when looking for headings or
// checklist items, so a "# comment" inside a shell snippet counts as a heading.
//
// # Components
//
//   - [Sections]: heading-delimited sections with nesting level
//   - [Readability]: Flesch-style reading ease from vowel-run syllable counts
//   - [ClassifyLinks]: Markdown, angle-bracket and bare URLs split into valid and broken
//   - [CountProgress]: TODO markers and checklist completion
//   - [Compute], [AnalyzeFile]: aggregate everything into a [HealthMetrics]
//
// Everything except [AnalyzeFile] and [LatestSnapshot] is a pure function of
// its input string and is safe to call concurrently.
package health
