package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/git"
	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
)

// resolveRepo returns the repository root for the working directory and the
// effective config for it. Outside a repository the working directory acts
// as the root, so analyze and report also work on plain directories.
func resolveRepo(ctx context.Context) (string, *config.Config, error) {
	workDir := config.WorkDirFromContext(ctx)

	root, err := git.RepoRoot(ctx, workDir)
	if err != nil {
		log.FromContext(ctx).Debug("using working directory as root", "dir", workDir, "reason", err)
		root = workDir
	}

	cfg, err := configForRoot(ctx, root)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// configForRoot returns the effective config for a repository root.
func configForRoot(ctx context.Context, root string) (*config.Config, error) {
	resolver := config.ResolverFromContext(ctx)
	if resolver == nil {
		return nil, errors.New("no config resolver in context")
	}
	return resolver.ConfigForRepo(root)
}

// outputFormat returns the --format flag value, or the configured default.
func outputFormat(cfg *config.Config) (output.Format, error) {
	if format != "" {
		return output.ParseFormat(format)
	}
	return output.ParseFormat(cfg.OutputFormat)
}

// renderStructured encodes v as JSON or YAML into a string.
func renderStructured(f output.Format, v any) (string, error) {
	var buf bytes.Buffer
	if err := output.New(&buf).PrintStructured(f, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// absPath resolves path against the working directory in ctx.
func absPath(ctx context.Context, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(config.WorkDirFromContext(ctx), path)
}

// relPath returns path relative to root when it lies inside root.
func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return path
}

// copyToClipboard copies text without styling. Failures are warnings only.
func copyToClipboard(ctx context.Context, text string) {
	l := log.FromContext(ctx)
	if err := clipboard.WriteAll(ansi.Strip(text)); err != nil {
		l.Printf("Warning: failed to copy to clipboard: %v\n", err)
		return
	}
	l.Println("Copied to clipboard")
}
