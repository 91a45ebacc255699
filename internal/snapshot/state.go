package snapshot

import (
	"strings"

	"github.com/mementor/mementor/internal/health"
)

// Item is one checklist entry.
type Item struct {
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// StateGroup is the checklist of one document section.
type StateGroup struct {
	Category string `json:"category" yaml:"category"`
	Items    []Item `json:"items" yaml:"items"`
}

// Context is the data a snapshot template is rendered against.
type Context struct {
	Title        string
	Description  string
	Changes      []string
	StateItems   []StateGroup
	Dependencies []Dependency
	NextActions  []string
	Metadata     Metadata
}

// StateFromDocument collects the checklist items of every section of text,
// grouped by section title. Sections without checklist items are omitted.
// An item is completed when checked with "X" or the check glyph.
func StateFromDocument(text string) []StateGroup {
	var groups []StateGroup
	for section := range health.Sections(text) {
		var items []Item
		for line := range strings.Lines(section.Body) {
			if item, ok := parseItem(line); ok {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			groups = append(groups, StateGroup{Category: section.Title, Items: items})
		}
	}
	return groups
}

// parseItem parses "- [ ] text", "- [X] text" or "- [✓] text".
func parseItem(line string) (Item, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "- [")
	if !ok {
		return Item{}, false
	}
	mark, desc, ok := strings.Cut(rest, "]")
	if !ok {
		return Item{}, false
	}

	var completed bool
	switch mark {
	case " ":
	case "X", health.CheckGlyph:
		completed = true
	default:
		return Item{}, false
	}

	return Item{Description: strings.TrimSpace(desc), Completed: completed}, true
}
