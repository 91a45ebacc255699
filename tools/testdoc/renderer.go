package main

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"time"
)

// commandPrefixes maps test name prefixes to the command they exercise.
var commandPrefixes = map[string]string{
	"Analyze":     "mementor analyze",
	"Snapshot":    "mementor snapshot",
	"Report":      "mementor report",
	"Render":      "mementor render",
	"Precommit":   "mementor precommit",
	"Hook":        "mementor hook",
	"ConfigInit":  "mementor config",
	"ConfigShow":  "mementor config",
	"ConfigHooks": "mementor config",
	"Doctor":      "mementor doctor",
}

var anchorRe = regexp.MustCompile(`[^a-z0-9-]`)

// RenderMarkdown writes the test documentation as markdown, grouped by
// command.
func RenderMarkdown(w io.Writer, packages []TestPackage, now time.Time) error {
	byCommand := make(map[string][]TestFunc)
	for _, pkg := range packages {
		for _, file := range pkg.Files {
			for _, test := range file.Tests {
				cmd := extractCommand(pkg.Name, test.Name)
				byCommand[cmd] = append(byCommand[cmd], test)
			}
		}
	}

	commands := make([]string, 0, len(byCommand))
	for cmd := range byCommand {
		commands = append(commands, cmd)
	}
	slices.Sort(commands)

	var b strings.Builder
	fmt.Fprintf(&b, "# Test Documentation\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(time.DateOnly))

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "| Command | Tests |\n")
	fmt.Fprintf(&b, "|---------|-------|\n")
	total := 0
	for _, cmd := range commands {
		fmt.Fprintf(&b, "| [%s](#%s) | %d |\n", cmd, toAnchor(cmd), len(byCommand[cmd]))
		total += len(byCommand[cmd])
	}
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", total)

	for _, cmd := range commands {
		renderCommandSection(&b, cmd, byCommand[cmd])
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderCommandSection(b *strings.Builder, cmd string, tests []TestFunc) {
	fmt.Fprintf(b, "## %s\n\n", cmd)
	fmt.Fprintf(b, "| Test | Description | Scenario | Expected |\n")
	fmt.Fprintf(b, "|------|-------------|----------|----------|\n")

	for _, test := range tests {
		desc := test.Summary
		if desc == "" {
			desc = "_No documentation_"
		}
		if test.IsTable {
			desc += " (table-driven)"
		}
		fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", test.Name, cell(desc), cell(test.Scenario), cell(test.Expected))
	}
	b.WriteString("\n")
}

// extractCommand names the command a test belongs to. Tests of mementor
// commands map through commandPrefixes; other tests are grouped by package.
//
// Examples:
//   - TestSnapshot_DryRun in cmd/mementor -> mementor snapshot
//   - TestCountProgress in internal/health -> internal/health
func extractCommand(pkg, testName string) string {
	prefix, _, _ := strings.Cut(strings.TrimPrefix(testName, "Test"), "_")
	if cmd, ok := commandPrefixes[prefix]; ok {
		return cmd
	}
	return pkg
}

// cell escapes pipes for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// toAnchor converts a heading to a markdown anchor.
func toAnchor(heading string) string {
	anchor := strings.ToLower(strings.ReplaceAll(heading, " ", "-"))
	return anchorRe.ReplaceAllString(anchor, "")
}
