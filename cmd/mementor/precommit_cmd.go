package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/git"
	"github.com/mementor/mementor/internal/hooks"
	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/snapshot"
)

func newPrecommitCmd() *cobra.Command {
	var (
		install bool
		force   bool
		noHook  bool
	)

	cmd := &cobra.Command{
		Use:     "precommit",
		Short:   "Snapshot the active document when documentation is staged",
		GroupID: GroupGit,
		Args:    cobra.NoArgs,
		Long: `Snapshot the active document when documentation is staged.

Meant to run from the git pre-commit hook. Staged paths are matched
against doc_patterns; when any matches, a snapshot is written and staged
so it becomes part of the commit. Otherwise nothing happens.

Hooks with on=["precommit"] run after the snapshot is staged. A failing
hook aborts the commit.

With --install, writes .git/hooks/pre-commit to run this command. An
existing hook not installed by mementor is only replaced with --force.`,
		Example: `  mementor precommit --install           # Install the git hook
  mementor precommit --install --force   # Replace an existing hook
  mementor precommit                     # Run manually`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, err := git.RepoRoot(ctx, config.WorkDirFromContext(ctx))
			if err != nil {
				return err
			}

			if install {
				hooksDir, err := git.HooksDir(ctx, root)
				if err != nil {
					return err
				}
				path, err := hooks.Install(hooksDir, force)
				if err != nil {
					return err
				}
				out.Printf("Installed %s\n", path)
				return nil
			}

			cfg, err := configForRoot(ctx, root)
			if err != nil {
				return err
			}

			staged, err := git.StagedFiles(ctx, root)
			if err != nil {
				return err
			}
			patterns, err := hooks.CompilePatterns(cfg.DocPatterns)
			if err != nil {
				return err
			}

			if !hooks.HasDocChanges(staged, patterns) {
				out.Println("No documentation changes staged, skipping snapshot")
				return nil
			}
			if l.IsVerbose() {
				l.Debug("documentation changes staged", "files", hooks.DocChanges(staged, patterns))
			}

			matches, err := hooks.SelectHooks(cfg.Hooks, "", noHook, hooks.CommandPrecommit)
			if err != nil {
				return err
			}

			res, err := snapshot.Create(ctx, snapshot.Options{Root: root, Config: cfg})
			if err != nil {
				return fmt.Errorf("create snapshot: %w", err)
			}
			if err := git.Add(ctx, root, res.Path); err != nil {
				return fmt.Errorf("stage snapshot: %w", err)
			}
			out.Printf("Created snapshot %s\n", relPath(root, res.Path))

			return hooks.RunAll(ctx, matches, hooks.Context{
				Doc:      cfg.DocPath(root),
				Snapshot: res.Path,
				Repo:     root,
				Trigger:  string(hooks.CommandPrecommit),
			})
		},
	}

	cmd.Flags().BoolVar(&install, "install", false, "Install the git pre-commit hook")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing pre-commit hook")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip precommit hooks")

	return cmd
}
