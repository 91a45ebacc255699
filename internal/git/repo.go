package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// RepoRoot returns the absolute top-level directory of the working tree
// containing dir. Returns ErrNotRepo if dir is not inside a working tree.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %s", ErrNotRepo, describe(dir))
	}
	return strings.TrimSpace(string(out)), nil
}

// StagedFiles returns repo-relative paths that are added, copied, modified
// or renamed in the index. Deleted paths are excluded.
func StagedFiles(ctx context.Context, dir string) ([]string, error) {
	out, err := outputGit(ctx, dir, "diff", "--cached", "--name-only", "--diff-filter=ACMR")
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}
	return splitLines(string(out)), nil
}

// Add stages the given paths in the repository at dir.
func Add(ctx context.Context, dir string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	if err := runGit(ctx, dir, args...); err != nil {
		return fmt.Errorf("failed to stage %s: %w", strings.Join(paths, ", "), err)
	}
	return nil
}

// HooksDir returns the absolute directory git runs hooks from.
// Honors core.hooksPath; defaults to .git/hooks.
func HooksDir(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotRepo, describe(dir))
	}
	hooks := strings.TrimSpace(string(out))
	if filepath.IsAbs(hooks) {
		return hooks, nil
	}

	// --git-path is relative to the directory git ran in
	base := dir
	if base == "" {
		base = "."
	}
	abs, err := filepath.Abs(filepath.Join(base, hooks))
	if err != nil {
		return "", err
	}
	return abs, nil
}

func splitLines(s string) []string {
	var lines []string
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func describe(dir string) string {
	if dir == "" {
		return "current directory"
	}
	return dir
}
