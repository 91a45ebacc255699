package health

import (
	"iter"
	"strings"
)

// headingMarker starts a heading line. The number of leading markers is the level.
const headingMarker = '#'

// Section is the text under one heading.
type Section struct {
	Level int    `json:"level" yaml:"level"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// Sections yields the heading-delimited sections of text in document order.
// Text before the first heading is dropped, so text without headings yields
// nothing.
func Sections(text string) iter.Seq[Section] {
	return func(yield func(Section) bool) {
		var (
			current Section
			body    []string
			open    bool
		)

		for _, line := range strings.Split(text, "\n") {
			level, title, ok := parseHeading(line)
			if !ok {
				if open {
					body = append(body, line)
				}
				continue
			}

			if open {
				current.Body = strings.Join(body, "\n")
				if !yield(current) {
					return
				}
			}

			current = Section{Level: level, Title: title}
			body = body[:0]
			open = true
		}

		if open {
			current.Body = strings.Join(body, "\n")
			yield(current)
		}
	}
}

// CollectSections returns all sections of text as a slice.
func CollectSections(text string) []Section {
	var sections []Section
	for s := range Sections(text) {
		sections = append(sections, s)
	}
	return sections
}

// parseHeading reports whether line is a heading line and returns its level
// and trimmed title.
func parseHeading(line string) (int, string, bool) {
	if line == "" || line[0] != headingMarker {
		return 0, "", false
	}
	level := 0
	for level < len(line) && line[level] == headingMarker {
		level++
	}
	return level, strings.TrimSpace(line[level:]), true
}
