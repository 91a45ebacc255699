// Package static provides non-interactive terminal output components.
//
// This package renders the tables mementor prints for analyze, report and
// doctor. Nothing here requires user interaction.
package static

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/mementor/mementor/internal/health"
	"github.com/mementor/mementor/internal/report"
	"github.com/mementor/mementor/internal/ui/styles"
)

// MetricsHeaders are the column headers for MetricsRows.
var MetricsHeaders = []string{"METRIC", "VALUE"}

// ReportHeaders are the column headers for ReportRows.
var ReportHeaders = []string{"DOCUMENT", "WORDS", "SECTIONS", "TODOS", "DONE", "LINKS", "BROKEN", "READABILITY"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Bold.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// MetricsRows lists every health metric as a metric/value row.
func MetricsRows(m health.HealthMetrics) [][]string {
	return [][]string{
		{"last_updated", m.LastUpdated.Format("2006-01-02 15:04:05")},
		{"word_count", fmt.Sprint(m.WordCount)},
		{"reading_time", fmt.Sprintf("%.1f min", m.ReadingTime)},
		{"has_todos", fmt.Sprint(m.HasTodos)},
		{"todo_count", fmt.Sprint(m.TodoCount)},
		{"linked_files", fmt.Sprint(len(m.LinkedFiles))},
		{"broken_links", brokenCell(m.BrokenLinks)},
		{"completion_percentage", fmt.Sprintf("%.1f%%", m.CompletionPercentage)},
		{"section_count", fmt.Sprint(m.SectionCount)},
		{"section_depth", fmt.Sprint(m.SectionDepth)},
		{"code_blocks", fmt.Sprint(m.CodeBlocks)},
		{"avg_section_length", fmt.Sprintf("%.1f", m.AvgSectionLength)},
		{"readability_score", fmt.Sprintf("%.1f", m.ReadabilityScore)},
		{"last_snapshot_delta", fmt.Sprintf("%.1f days", m.LastSnapshotDelta)},
	}
}

// ReportRows builds one row per report entry. Unavailable documents show
// their error in place of the metrics.
func ReportRows(root string, entries []report.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		name := relPath(root, e.Path)
		if e.Metrics == nil {
			rows = append(rows, []string{name, styles.ErrorStyle.Render(e.Error), "", "", "", "", "", ""})
			continue
		}
		m := e.Metrics
		rows = append(rows, []string{
			name,
			fmt.Sprint(m.WordCount),
			fmt.Sprint(m.SectionCount),
			fmt.Sprint(m.TodoCount),
			fmt.Sprintf("%.0f%%", m.CompletionPercentage),
			fmt.Sprint(len(m.LinkedFiles)),
			brokenCell(m.BrokenLinks),
			fmt.Sprintf("%.1f", m.ReadabilityScore),
		})
	}
	return rows
}

func brokenCell(broken []string) string {
	n := fmt.Sprint(len(broken))
	if len(broken) == 0 {
		return n
	}
	return styles.ErrorStyle.Render(n)
}

func relPath(root, path string) string {
	if rel, ok := strings.CutPrefix(path, root); ok && root != "" {
		return strings.TrimLeft(rel, `/\`)
	}
	return path
}
