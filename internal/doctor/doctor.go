package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/git"
	"github.com/mementor/mementor/internal/health"
	"github.com/mementor/mementor/internal/hooks"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/snapshot"
	"github.com/mementor/mementor/internal/ui/styles"
)

// Options controls Diagnose and Run.
type Options struct {
	Root      string         // repository root; empty when not inside a repository
	Config    *config.Config // effective config; nil when it failed to load
	ConfigErr error          // load error, if any
	Fix       bool           // apply fixes
	Force     bool           // let the hook fix replace a foreign pre-commit hook
}

// Diagnose runs all checks without changing anything.
func Diagnose(ctx context.Context, opts Options) *Result {
	var r Result

	if err := git.CheckGit(); err != nil {
		r.fail("git", err.Error(), Issue{Key: "git", Description: err.Error(), Category: CategoryEnvironment})
	} else {
		r.pass("git", "installed")
	}

	if opts.Root == "" || !git.IsInsideRepo(ctx, opts.Root) {
		r.fail("repository", "not inside a git repository",
			Issue{Key: "repository", Description: "not inside a git repository", Category: CategoryEnvironment})
	} else {
		r.pass("repository", opts.Root)
	}

	cfg := opts.Config
	switch {
	case opts.ConfigErr != nil:
		r.fail("config", opts.ConfigErr.Error(),
			Issue{Key: "config", Description: opts.ConfigErr.Error(), Category: CategoryConfig})
		return &r
	case cfg == nil:
		r.fail("config", "no configuration loaded",
			Issue{Key: "config", Description: "no configuration loaded", Category: CategoryConfig})
		return &r
	}
	if err := cfg.Validate(); err != nil {
		r.fail("config", err.Error(), Issue{Key: "config", Description: err.Error(), Category: CategoryConfig})
	} else {
		r.pass("config", "valid")
	}

	docPath := cfg.DocPath(opts.Root)
	if doc, err := health.LoadDocument(docPath); err != nil {
		r.fail("active document", err.Error(),
			Issue{Key: docPath, Description: err.Error(), Category: CategoryDocument})
	} else {
		r.pass("active document", fmt.Sprintf("%s (%d words)", docPath, len(strings.Fields(doc.Text))))
	}

	if _, ok := snapshot.NewRegistry().Get(cfg.Template); ok {
		r.pass("template", cfg.Template)
	} else if tmplPath := cfg.TemplatePath(opts.Root); tmplPath != "" {
		if _, err := os.ReadFile(tmplPath); err != nil {
			r.fail("template", err.Error(),
				Issue{Key: tmplPath, Description: fmt.Sprintf("template unreadable: %v", err), Category: CategoryDocument})
		} else {
			r.pass("template", tmplPath)
		}
	} else {
		r.pass("template", "builtin")
	}

	archive := cfg.ArchivePath(opts.Root)
	if info, err := os.Stat(archive); err != nil || !info.IsDir() {
		r.fail("archive", "missing: "+archive, Issue{
			Key:         archive,
			Description: "snapshot archive directory does not exist",
			FixAction:   FixCreateArchive,
			Category:    CategoryArchive,
		})
	} else {
		r.pass("archive", archive)
		checkLatestSnapshot(&r, archive, cfg.SnapshotExt)
	}

	if opts.Root != "" {
		hooksDir, err := git.HooksDir(ctx, opts.Root)
		switch {
		case err != nil:
			r.fail("pre-commit hook", err.Error(),
				Issue{Key: "pre-commit", Description: err.Error(), Category: CategoryHook})
		case hooks.IsInstalled(hooksDir):
			r.pass("pre-commit hook", "installed")
		default:
			r.fail("pre-commit hook", "not installed", Issue{
				Key:         hooksDir,
				Description: "pre-commit hook does not run mementor precommit",
				FixAction:   FixInstallHook,
				Category:    CategoryHook,
			})
		}
	}

	return &r
}

// checkLatestSnapshot verifies the newest snapshot in the archive still
// carries a readable metadata header.
func checkLatestSnapshot(r *Result, archive, ext string) {
	if ext == "" {
		ext = health.DefaultSnapshotExt
	}
	path, _, ok := health.LatestSnapshotFile(archive, ext)
	if !ok {
		r.pass("latest snapshot", "none yet")
		return
	}

	content, err := os.ReadFile(path)
	if err == nil {
		var meta snapshot.Metadata
		if meta, _, err = snapshot.Parse(content); err == nil {
			r.pass("latest snapshot", fmt.Sprintf("%s (%s)", path, meta.ID))
			return
		}
	}
	r.fail("latest snapshot", err.Error(), Issue{
		Key:         path,
		Description: fmt.Sprintf("latest snapshot unreadable: %v", err),
		Category:    CategoryArchive,
	})
}

func (r *Result) pass(name, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, OK: true, Detail: detail})
}

func (r *Result) fail(name, detail string, issue Issue) {
	r.Checks = append(r.Checks, Check{Name: name, Detail: detail})
	r.Issues = append(r.Issues, issue)
}

// Fixable returns the issues --fix can repair.
func (r *Result) Fixable() []Issue {
	var fixable []Issue
	for _, issue := range r.Issues {
		if issue.FixAction != FixNone {
			fixable = append(fixable, issue)
		}
	}
	return fixable
}

// Run diagnoses the setup, prints the results and applies fixes when
// opts.Fix is set.
func Run(ctx context.Context, opts Options) error {
	out := output.FromContext(ctx)
	r := Diagnose(ctx, opts)

	for _, c := range r.Checks {
		mark := styles.SuccessStyle.Render("✓")
		if !c.OK {
			mark = styles.WarningStyle.Render("⚠")
		}
		out.Printf("  %s %-16s %s\n", mark, c.Name, styles.MutedStyle.Render(c.Detail))
	}

	if len(r.Issues) == 0 {
		out.Println("\n✓ No issues found")
		return nil
	}

	out.Printf("\nFound %d issues\n", len(r.Issues))

	if !opts.Fix {
		if len(r.Fixable()) > 0 {
			out.Println("Run 'mementor doctor --fix' to repair.")
		}
		return nil
	}

	return fixAll(ctx, r.Fixable(), opts.Force)
}

// fixAll applies fixes for all fixable issues.
func fixAll(ctx context.Context, issues []Issue, force bool) error {
	out := output.FromContext(ctx)
	var errs []error

	for _, issue := range issues {
		switch issue.FixAction {
		case FixCreateArchive:
			if err := os.MkdirAll(issue.Key, 0o755); err != nil {
				errs = append(errs, fmt.Errorf("create %s: %w", issue.Key, err))
				continue
			}
			out.Printf("  ✓ Created %s\n", issue.Key)

		case FixInstallHook:
			path, err := hooks.Install(issue.Key, force)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			out.Printf("  ✓ Installed %s\n", path)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d fixes failed: %w", len(errs), errors.Join(errs...))
	}
	return nil
}
