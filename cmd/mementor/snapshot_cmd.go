package main

import (
	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/hooks"
	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/snapshot"
)

func newSnapshotCmd() *cobra.Command {
	var (
		dryRun   bool
		copyOut  bool
		hookName string
		noHook   bool
		env      []string
	)

	cmd := &cobra.Command{
		Use:     "snapshot",
		Short:   "Archive a snapshot of the active document",
		Aliases: []string{"snap", "s"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Archive a snapshot of the active document.

The snapshot carries a YAML front-matter header with its id, version,
tags, dependencies and the document's health metrics, followed by the
rendered snapshot template. It is written to <archive>/<year>/ using
snapshot_format for the file name.

Hooks with on=["snapshot"] run after the snapshot is written. Hook
failures are reported as warnings.`,
		Example: `  mementor snapshot                 # Write a snapshot
  mementor snapshot -n              # Print the snapshot without writing
  mementor snapshot --copy          # Also copy the snapshot to the clipboard
  mementor snapshot --no-hook       # Skip snapshot hooks
  mementor snapshot --hook=publish  # Run 'publish' instead of the default hooks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, cfg, err := resolveRepo(ctx)
			if err != nil {
				return err
			}

			// Validate hooks before doing any work
			matches, err := hooks.SelectHooks(cfg.Hooks, hookName, noHook, hooks.CommandSnapshot)
			if err != nil {
				return err
			}
			hookEnv, err := hooks.ParseEnvWithStdin(env)
			if err != nil {
				return err
			}

			res, err := snapshot.Create(ctx, snapshot.Options{Root: root, Config: cfg, DryRun: dryRun})
			if err != nil {
				return err
			}

			if dryRun {
				l.Printf("Would write %s\n", relPath(root, res.Path))
				out.Print(string(res.Content))
			} else {
				out.Println(res.Path)
			}

			if copyOut {
				copyToClipboard(ctx, string(res.Content))
			}

			hooks.RunAllNonFatal(ctx, matches, hooks.Context{
				Doc:      cfg.DocPath(root),
				Snapshot: res.Path,
				Repo:     root,
				Trigger:  string(hooks.CommandSnapshot),
				Env:      hookEnv,
				DryRun:   dryRun,
			})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the snapshot without writing it")
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the snapshot to the clipboard")
	cmd.Flags().StringVar(&hookName, "hook", "", "Run named hook instead of default")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip snapshot hooks")
	cmd.Flags().StringSliceVarP(&env, "arg", "a", nil, "Set hook variable KEY=VALUE")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hook")
	cmd.RegisterFlagCompletionFunc("hook", completeHookNames)
	cmd.RegisterFlagCompletionFunc("arg", cobra.NoFileCompletions)

	return cmd
}
