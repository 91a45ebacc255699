package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/health"
	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/storage"
	"github.com/mementor/mementor/internal/ui/progress"
	"github.com/mementor/mementor/internal/ui/static"
	"github.com/mementor/mementor/internal/ui/styles"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		copyOut    bool
		exportPath string
	)

	cmd := &cobra.Command{
		Use:     "analyze [document]",
		Short:   "Show health metrics for a document",
		Aliases: []string{"a"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show health metrics for a document.

Without an argument the configured active document is analyzed. The
last snapshot delta is measured against the snapshot archive.`,
		Example: `  mementor analyze                  # Analyze the active document
  mementor analyze docs/guide.md    # Analyze a specific document
  mementor analyze -f json          # Output metrics as JSON
  mementor analyze --copy           # Also copy the output to the clipboard
  mementor analyze -e health.yaml   # Also save metrics to a file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			root, cfg, err := resolveRepo(ctx)
			if err != nil {
				return err
			}

			f, err := outputFormat(cfg)
			if err != nil {
				return err
			}

			docPath := cfg.DocPath(root)
			if len(args) == 1 {
				docPath = absPath(ctx, args[0])
			}

			metrics, err := health.AnalyzeFile(docPath, health.Options{
				SnapshotDir: cfg.ArchivePath(root),
				SnapshotExt: cfg.SnapshotExt,
			})
			if err != nil {
				return err
			}

			text, err := formatMetrics(f, relPath(root, docPath), metrics)
			if err != nil {
				return err
			}
			out.Print(text)

			if copyOut {
				copyToClipboard(ctx, text)
			}
			if exportPath != "" {
				dest := absPath(ctx, exportPath)
				if err := storage.Save(dest, metrics); err != nil {
					return err
				}
				log.FromContext(ctx).Printf("Saved metrics to %s\n", relPath(root, dest))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the output to the clipboard")
	cmd.Flags().StringVarP(&exportPath, "export", "e", "", "Save metrics to a .json, .yaml or .yml file")

	return cmd
}

// formatMetrics renders metrics as a table with a completion bar, or as
// JSON or YAML.
func formatMetrics(f output.Format, name string, m health.HealthMetrics) (string, error) {
	if f != output.FormatTable {
		return renderStructured(f, m)
	}

	var b strings.Builder
	b.WriteString(styles.Bold.Render(name))
	b.WriteString("\n\n")
	b.WriteString(static.RenderTable(static.MetricsHeaders, static.MetricsRows(m)))
	b.WriteString("\n")
	progress.WriteCompletionBar(&b, "Completion", m.CompletionPercentage)
	return b.String(), nil
}
