package hooks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/mementor/mementor/internal/storage"
)

// PreCommitHookName is the git hook file mementor installs.
const PreCommitHookName = "pre-commit"

// preCommitMarker identifies hook scripts written by Install.
const preCommitMarker = "# installed by mementor"

const preCommitScript = `#!/bin/sh
` + preCommitMarker + `
# Snapshot the active document when documentation changes are staged.
exec mementor precommit
`

// ErrHookExists is returned by Install when a foreign pre-commit hook exists.
var ErrHookExists = errors.New("pre-commit hook already exists (use --force to overwrite)")

// CompilePatterns compiles doc_patterns into matchers.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid doc_patterns[%d] %q: %w", i, p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// IsDocFile reports whether a repo-relative, slash-separated path matches
// any of the patterns.
func IsDocFile(path string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// DocChanges returns the staged files that are documentation.
func DocChanges(files []string, patterns []*regexp.Regexp) []string {
	var docs []string
	for _, f := range files {
		if IsDocFile(f, patterns) {
			docs = append(docs, f)
		}
	}
	return docs
}

// HasDocChanges reports whether any staged file is documentation. It stops
// at the first match.
func HasDocChanges(files []string, patterns []*regexp.Regexp) bool {
	return slices.ContainsFunc(files, func(f string) bool {
		return IsDocFile(f, patterns)
	})
}

// IsInstalled reports whether hooksDir holds a pre-commit hook written by Install.
func IsInstalled(hooksDir string) bool {
	data, err := os.ReadFile(filepath.Join(hooksDir, PreCommitHookName))
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte(preCommitMarker))
}

// Install writes an executable pre-commit hook into hooksDir and returns its
// path. An existing mementor hook is rewritten; any other hook is only
// replaced when force is set.
func Install(hooksDir string, force bool) (string, error) {
	path := filepath.Join(hooksDir, PreCommitHookName)

	if _, err := os.Stat(path); err == nil && !force && !IsInstalled(hooksDir) {
		return "", fmt.Errorf("%s: %w", path, ErrHookExists)
	}

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}
	if err := storage.WriteFile(path, []byte(preCommitScript), 0o755); err != nil {
		return "", fmt.Errorf("failed to write pre-commit hook: %w", err)
	}
	return path, nil
}
