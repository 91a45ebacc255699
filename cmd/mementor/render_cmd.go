package main

import (
	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/snapshot"
)

func newRenderCmd() *cobra.Command {
	var (
		templatePath string
		contextPath  string
		outputPath   string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Render a document from a template",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Render a document from a Go text/template file.

The template is a file path or the name of a builtin template.

Template data is read from a TOML, YAML or JSON context file. The key
current_date is set to today's date unless the context defines it.
The output defaults to the active document and is replaced atomically.`,
		Example: `  mementor render -t docs/context.tmpl -c docs/context.toml
  mementor render -t notes.tmpl -c notes.yaml -o docs/notes.md
  mementor render -t docs/context.tmpl -c docs/context.toml -n   # Print only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, cfg, err := resolveRepo(ctx)
			if err != nil {
				return err
			}

			tmpl, ok := snapshot.NewRegistry().Get(templatePath)
			if !ok {
				if tmpl, err = snapshot.LoadTemplate(absPath(ctx, templatePath)); err != nil {
					return err
				}
			}

			var data map[string]any
			if contextPath != "" {
				if data, err = snapshot.LoadContext(absPath(ctx, contextPath)); err != nil {
					return err
				}
			}

			dest := cfg.DocPath(root)
			if outputPath != "" {
				dest = absPath(ctx, outputPath)
			}

			content, err := snapshot.RenderDocument(ctx, snapshot.RenderOptions{
				Template: tmpl,
				Data:     data,
				Output:   dest,
				DryRun:   dryRun,
			})
			if err != nil {
				return err
			}

			if dryRun {
				out.Print(content)
				return nil
			}
			l.Printf("Rendered %s\n", relPath(root, dest))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template file")
	cmd.Flags().StringVarP(&contextPath, "context", "c", "", "Context file (.toml, .yaml, .json)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: active document)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the rendered document without writing")
	cmd.MarkFlagRequired("template")
	cmd.RegisterFlagCompletionFunc("template", completeTemplates)

	return cmd
}

// completeTemplates offers the builtin template names, then falls back to files.
func completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return snapshot.NewRegistry().Names(), cobra.ShellCompDirectiveDefault
}
