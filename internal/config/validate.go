package config

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/mementor/mementor/internal/format"
)

// Valid enum values for configuration fields.
var (
	ValidOutputFormats = []string{"table", "json", "yaml"}
	ValidHookTriggers  = []string{"snapshot", "precommit", "all"}
)

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	if c.ActiveDoc == "" {
		return fmt.Errorf("active_doc must not be empty")
	}
	return c.fields().validate()
}

func (c *Config) fields() *LocalConfig {
	return &LocalConfig{
		SnapshotExt:    c.SnapshotExt,
		SnapshotFormat: c.SnapshotFormat,
		OutputFormat:   c.OutputFormat,
		DocPatterns:    c.DocPatterns,
		Hooks:          c.Hooks,
	}
}

// validate checks every set field. Unset fields are inherited and checked
// after merging.
func (l *LocalConfig) validate() error {
	if err := validateEnum(l.OutputFormat, "output_format", ValidOutputFormats); err != nil {
		return err
	}
	if err := validateExt(l.SnapshotExt); err != nil {
		return err
	}
	if l.SnapshotFormat != "" {
		if err := format.ValidateFormat(l.SnapshotFormat); err != nil {
			return fmt.Errorf("invalid snapshot_format: %w", err)
		}
	}
	if err := validateDocPatterns(l.DocPatterns); err != nil {
		return err
	}
	return validateHooks(l.Hooks)
}

// ValidateOutputFormat validates an output format value against ValidOutputFormats.
// Exported for use in CLI flag validation.
func ValidateOutputFormat(f string) error {
	return validateEnum(f, "format", ValidOutputFormats)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

func validateExt(ext string) error {
	if ext == "" {
		return nil
	}
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("invalid snapshot_ext %q: must start with \".\" and name an extension", ext)
	}
	return nil
}

// validateDocPatterns checks that all patterns compile as regular expressions.
func validateDocPatterns(patterns []string) error {
	for i, pat := range patterns {
		if _, err := regexp.Compile(pat); err != nil {
			return fmt.Errorf("invalid doc_patterns[%d] %q: %w", i, pat, err)
		}
	}
	return nil
}

// validateHooks checks hook triggers. Disabled entries only need a name.
func validateHooks(hc HooksConfig) error {
	names := make([]string, 0, len(hc.Hooks))
	for name := range hc.Hooks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		hook := hc.Hooks[name]
		if !hook.IsEnabled() {
			continue
		}
		if hook.Command == "" {
			return fmt.Errorf("hook %q: command must not be empty", name)
		}
		for _, trigger := range hook.On {
			if err := validateEnum(trigger, fmt.Sprintf("hooks.%s.on", name), ValidHookTriggers); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
