package health

import "strings"

// CheckGlyph marks a completed checklist item, as in "- [✓] done".
const CheckGlyph = "✓"

// Markers recognized by CountProgress. Matching is plain substring counting.
const (
	todoMarker      = "TODO"
	openBoxMarker   = "[ ]"
	checklistPrefix = "- ["
	checkedX        = "- [X]"
	checkedTick     = "- [" + CheckGlyph + "]"
)

// Progress summarizes TODO markers and checklist completion.
type Progress struct {
	HasTodos             bool    `json:"has_todos" yaml:"has_todos"`
	TodoCount            int     `json:"todo_count" yaml:"todo_count"`
	TotalItems           int     `json:"total_items" yaml:"total_items"`
	CompletedItems       int     `json:"completed_items" yaml:"completed_items"`
	CompletionPercentage float64 `json:"completion_percentage" yaml:"completion_percentage"`
}

// CountProgress counts open TODO markers and checklist items in text.
// A document without checklist items is 100% complete.
//
// Items split across lines, or checked with a glyph other than "X" or "✓",
// are not recognized as completed.
func CountProgress(text string) Progress {
	todos := strings.Count(text, todoMarker)
	boxes := strings.Count(text, openBoxMarker)

	p := Progress{
		HasTodos:       todos > 0 || boxes > 0,
		TodoCount:      todos + boxes,
		TotalItems:     strings.Count(text, checklistPrefix),
		CompletedItems: strings.Count(text, checkedX) + strings.Count(text, checkedTick),
	}

	if p.TotalItems > 0 {
		p.CompletionPercentage = float64(p.CompletedItems) / float64(p.TotalItems) * 100
	} else {
		p.CompletionPercentage = 100
	}
	return p
}
