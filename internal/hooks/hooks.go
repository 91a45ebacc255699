package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
)

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	// e.g., "it's" becomes 'it'\''s'
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// CommandType identifies which operation is triggering the hook
type CommandType string

const (
	CommandSnapshot  CommandType = "snapshot"
	CommandPrecommit CommandType = "precommit"
	CommandRun       CommandType = "run"
)

// Context holds the values for placeholder substitution
type Context struct {
	Doc      string            // absolute path of the active document
	Snapshot string            // absolute path of the snapshot just written
	Repo     string            // repository root
	Trigger  string            // operation that triggered the hook
	Env      map[string]string // custom variables from --arg key=value flags
	DryRun   bool              // if true, print command instead of executing
}

// HookMatch represents a hook that matched the current trigger
type HookMatch struct {
	Hook *config.Hook
	Name string
}

// SelectHooks determines which hooks to run based on config and CLI flags.
// If hookName is specified, only that hook runs (ignoring "on").
// Otherwise, all hooks with matching "on" conditions run, sorted by name.
// Returns nil slice if no hooks should run, error if the named hook doesn't exist.
func SelectHooks(cfg config.HooksConfig, hookName string, noHook bool, cmdType CommandType) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	if hookName != "" {
		hook, exists := cfg.Hooks[hookName]
		if !exists {
			return nil, unknownHookError(cfg, hookName)
		}
		return []HookMatch{{Hook: &hook, Name: hookName}}, nil
	}

	return findMatchingHooks(cfg, cmdType), nil
}

// unknownHookError names the closest configured hooks, if any.
func unknownHookError(cfg config.HooksConfig, name string) error {
	if suggestions := Suggest(cfg, name); len(suggestions) > 0 {
		return fmt.Errorf("unknown hook %q (did you mean %s?)", name, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("unknown hook %q", name)
}

// Suggest returns configured hook names that fuzzy-match name, best first.
func Suggest(cfg config.HooksConfig, name string) []string {
	names := Names(cfg)
	matches := fuzzy.Find(name, names)

	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// Names returns the configured hook names in sorted order.
func Names(cfg config.HooksConfig) []string {
	names := make([]string, 0, len(cfg.Hooks))
	for name := range cfg.Hooks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// findMatchingHooks returns all hooks that have the command type in their "on" list.
// Hooks without "on" are skipped (they only run via mementor hook NAME).
func findMatchingHooks(cfg config.HooksConfig, cmdType CommandType) []HookMatch {
	var matches []HookMatch

	for _, name := range Names(cfg) {
		hook := cfg.Hooks[name]
		if len(hook.On) > 0 && hookMatchesCommand(hook, cmdType) {
			matches = append(matches, HookMatch{Hook: &hook, Name: name})
		}
	}

	return matches
}

// hookMatchesCommand returns true if cmdType is in the hook's "on" list.
// Special value "all" matches all command types.
func hookMatchesCommand(hook config.Hook, cmdType CommandType) bool {
	for _, cmd := range hook.On {
		if cmd == "all" || cmd == string(cmdType) {
			return true
		}
	}
	return false
}

// RunAll runs all matched hooks in the repository root.
// Returns on first error.
func RunAll(ctx context.Context, matches []HookMatch, hc Context) error {
	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hc); err != nil {
			return fmt.Errorf("hook %q failed: %w", match.Name, err)
		}
	}
	return nil
}

// RunAllNonFatal runs all matched hooks, logging failures as warnings instead
// of returning errors. Used after a snapshot is already written.
func RunAllNonFatal(ctx context.Context, matches []HookMatch, hc Context) {
	l := log.FromContext(ctx)
	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hc); err != nil {
			l.Printf("Warning: hook %q failed: %v\n", match.Name, err)
		}
	}
}

// runHook executes a single hook with variable substitution.
func runHook(ctx context.Context, name string, hook *config.Hook, hc Context) error {
	command := SubstitutePlaceholders(hook.Command, hc)
	l := log.FromContext(ctx)

	if hc.DryRun {
		output.FromContext(ctx).Printf("[dry-run] %s: %s\n", name, command)
		return nil
	}

	l.Printf("Running hook '%s'...\n", name)
	l.Debug("hook command", "name", name, "command", command)

	shellCmd := exec.CommandContext(ctx, "sh", "-c", command)
	shellCmd.Dir = hc.Repo
	shellCmd.Stdout = output.FromContext(ctx).Writer()
	shellCmd.Stderr = os.Stderr
	shellCmd.Stdin = os.Stdin

	if err := shellCmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if hook.Description != "" {
		l.Printf("  ✓ %s\n", hook.Description)
	}
	return nil
}

// readStdinIfPiped reads all content from r if it's piped (not a TTY).
// Returns empty string and nil if r is a terminal.
func readStdinIfPiped(r *os.File) (string, error) {
	if isatty.IsTerminal(r.Fd()) || isatty.IsCygwinTerminal(r.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// ParseEnv parses a slice of "key=value" strings into a map.
// Returns an error if any entry doesn't contain "=".
func ParseEnv(envSlice []string) (map[string]string, error) {
	result, stdinKeys, err := parseEnv(envSlice)
	if err != nil {
		return nil, err
	}
	for _, key := range stdinKeys {
		result[key] = "-"
	}
	return result, nil
}

// ParseEnvWithStdin parses a slice of "key=value" strings into a map.
// If any value is "-", reads stdin content and assigns it to all such keys.
// Returns an error if stdin is requested but not piped or empty.
func ParseEnvWithStdin(envSlice []string) (map[string]string, error) {
	return parseEnvFrom(envSlice, os.Stdin)
}

func parseEnvFrom(envSlice []string, stdin *os.File) (map[string]string, error) {
	result, stdinKeys, err := parseEnv(envSlice)
	if err != nil {
		return nil, err
	}

	if len(stdinKeys) > 0 {
		content, err := readStdinIfPiped(stdin)
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
		}
		for _, key := range stdinKeys {
			result[key] = content
		}
	}

	return result, nil
}

func parseEnv(envSlice []string) (map[string]string, []string, error) {
	result := make(map[string]string)
	var stdinKeys []string

	for _, e := range envSlice {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid env format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, nil, fmt.Errorf("invalid env format %q: key cannot be empty", e)
		}
		if value == "-" {
			stdinKeys = append(stdinKeys, key)
		} else {
			result[key] = value
		}
	}
	return result, stdinKeys, nil
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default} patterns for env variables.
// This is used after static replacements to expand custom env placeholders.
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values from Context.
// Values are properly escaped to prevent command injection.
//
// Static placeholders: {doc}, {snapshot}, {repo}, {trigger}
// Env placeholders (from Context.Env):
//   - {key}         - shell-quoted value
//   - {key:raw}     - unquoted value (for embedding in existing quotes)
//   - {key:-default} - shell-quoted value with default if key missing
func SubstitutePlaceholders(command string, hc Context) string {
	static := strings.NewReplacer(
		"{doc}", shellQuote(hc.Doc),
		"{snapshot}", shellQuote(hc.Snapshot),
		"{repo}", shellQuote(hc.Repo),
		"{trigger}", shellQuote(hc.Trigger),
	)
	result := static.Replace(command)

	return envPlaceholderRegex.ReplaceAllStringFunc(result, func(match string) string {
		submatch := envPlaceholderRegex.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		key := submatch[1]
		isRaw := submatch[2] == ":raw"
		defaultVal := submatch[3]

		if val, ok := hc.Env[key]; ok {
			if isRaw {
				return val
			}
			return shellQuote(val)
		}

		if isRaw {
			return defaultVal
		}
		return shellQuote(defaultVal)
	})
}
