package format

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

// DefaultSnapshotFormat is the default format for snapshot file names
const DefaultSnapshotFormat = "snapshot_{timestamp}"

// Layouts used for the time placeholders.
const (
	TimestampLayout = "20060102_150405"
	DateLayout      = "2006-01-02"
	YearLayout      = "2006"
)

// ValidPlaceholders lists all supported placeholders
var ValidPlaceholders = []string{"{timestamp}", "{date}", "{year}", "{doc}"}

// timePlaceholders are the placeholders that vary between snapshots.
var timePlaceholders = []string{"{timestamp}", "{date}"}

// FormatParams contains the values for placeholder substitution
type FormatParams struct {
	Time    time.Time // snapshot creation time
	DocPath string    // active document path; only the base name is used
}

// placeholderRegex matches {placeholder-name} patterns
var placeholderRegex = regexp.MustCompile(`\{[a-z_-]+\}`)

// ValidateFormat checks if a format string is valid
// Returns error if format contains unknown placeholders
func ValidateFormat(format string) error {
	matches := placeholderRegex.FindAllString(format, -1)
	for _, match := range matches {
		if !slices.Contains(ValidPlaceholders, match) {
			return fmt.Errorf("unknown placeholder %q in format %q (valid: %s)",
				match, format, strings.Join(ValidPlaceholders, ", "))
		}
	}

	hasTime := false
	for _, p := range timePlaceholders {
		if strings.Contains(format, p) {
			hasTime = true
			break
		}
	}
	if !hasTime {
		return fmt.Errorf("format %q must contain a time placeholder (%s)",
			format, strings.Join(timePlaceholders, ", "))
	}

	if strings.ContainsAny(format, `/\`) {
		return fmt.Errorf("format %q must not contain path separators", format)
	}

	return nil
}

// FormatSnapshotName applies the format template to generate a snapshot file
// name without extension.
func FormatSnapshotName(format string, params FormatParams) string {
	doc := filepath.Base(params.DocPath)
	doc = strings.TrimSuffix(doc, filepath.Ext(doc))
	if params.DocPath == "" {
		doc = ""
	}

	result := format
	result = strings.ReplaceAll(result, "{timestamp}", params.Time.Format(TimestampLayout))
	result = strings.ReplaceAll(result, "{date}", params.Time.Format(DateLayout))
	result = strings.ReplaceAll(result, "{year}", params.Time.Format(YearLayout))
	result = strings.ReplaceAll(result, "{doc}", SanitizeForPath(doc))
	return result
}

// SanitizeForPath replaces characters that are problematic in file paths
// Replaces: / \ : * ? " < > | with -
func SanitizeForPath(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)
	return replacer.Replace(name)
}
