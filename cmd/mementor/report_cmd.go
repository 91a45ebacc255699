package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/report"
	"github.com/mementor/mementor/internal/ui/progress"
	"github.com/mementor/mementor/internal/ui/static"
)

func newReportCmd() *cobra.Command {
	var (
		ext         string
		exclude     []string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:     "report [dir]",
		Short:   "Show health metrics for every document in a directory",
		Aliases: []string{"r"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show health metrics for every document in a directory.

Documents are analyzed concurrently. Hidden directories and the snapshot
archive are skipped. Unreadable documents are listed with their error and
do not stop the report.`,
		Example: `  mementor report                   # Report on the repository
  mementor report docs              # Report on a directory
  mementor report --ext .txt        # Analyze .txt files instead of .md
  mementor report -x docs/drafts    # Skip a directory
  mementor report -f json           # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, cfg, err := resolveRepo(ctx)
			if err != nil {
				return err
			}

			f, err := outputFormat(cfg)
			if err != nil {
				return err
			}

			dir := root
			if len(args) == 1 {
				dir = absPath(ctx, args[0])
			}

			skip := []string{cfg.ArchivePath(root)}
			for _, x := range exclude {
				skip = append(skip, absPath(ctx, x))
			}

			opts := report.Options{
				Ext:         ext,
				Exclude:     skip,
				SnapshotDir: cfg.ArchivePath(root),
				Concurrency: concurrency,
			}

			// The bar is created on the first callback, once the total is known
			var (
				bar  *progress.ProgressBar
				once sync.Once
			)
			if !quiet && progress.Enabled(os.Stderr) {
				opts.Progress = func(done, total int) {
					once.Do(func() {
						bar = progress.NewProgressBar(total, "Analyzing documents...")
						bar.Start()
					})
					bar.SetProgress(done, "Analyzing documents...")
				}
			}

			rep, err := report.Run(ctx, dir, opts)
			if bar != nil {
				bar.Stop()
			}
			if err != nil {
				return err
			}

			for _, e := range rep.Entries {
				if e.Error != "" {
					l.Printf("Warning: %s\n", e.Error)
				}
			}

			if f != output.FormatTable {
				return out.PrintStructured(f, rep)
			}

			if len(rep.Entries) == 0 {
				out.Printf("No %s documents found in %s\n", displayExt(ext), dir)
				return nil
			}

			out.Print(static.RenderTable(static.ReportHeaders, static.ReportRows(dir, rep.Entries)))
			out.Println()
			out.Println(summaryLine(rep.Summary))
			progress.WriteCompletionBar(out.Writer(), "Mean completion", rep.Summary.MeanCompletion)
			return nil
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", ".md", "Document extension")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "Directories to skip")
	cmd.Flags().IntVarP(&concurrency, "jobs", "j", 0, "Max documents analyzed in parallel (default: number of CPUs)")

	return cmd
}

// summaryLine describes a report summary in one line.
func summaryLine(s report.Summary) string {
	parts := []string{
		plural(s.Documents, "document"),
		plural(s.Words, "word"),
		plural(s.Todos, "todo"),
		plural(s.BrokenLinks, "broken link"),
	}
	if s.Unavailable > 0 {
		parts = append(parts, fmt.Sprintf("%d unavailable", s.Unavailable))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func displayExt(ext string) string {
	if ext == "" {
		return ".md"
	}
	return ext
}
