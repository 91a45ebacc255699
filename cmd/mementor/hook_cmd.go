package main

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/hooks"
	"github.com/mementor/mementor/internal/log"
)

func newHookCmd() *cobra.Command {
	var (
		env    []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:               "hook <name>...",
		Short:             "Run configured hook",
		Aliases:           []string{"h"},
		GroupID:           GroupUtility,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeHookArg,
		Long: `Run one or more configured hooks.

Hooks are defined in config.toml or .mementor.toml and can use
placeholders: {doc}, {repo}, {trigger} and custom {key} variables set
with --arg. Use {key:-default} for a fallback and {key:raw} to skip
shell quoting. --arg key=- reads the value from piped stdin.

Hooks run in the repository root. All names are checked before any
hook runs; the first failing hook stops the rest.`,
		Example: `  mementor hook publish                    # Run 'publish' hook
  mementor hook lint publish               # Run multiple hooks
  mementor hook notify -a msg=done         # Set a hook variable
  git log -1 | mementor hook notify -a msg=-  # Read a variable from stdin
  mementor hook publish -d                 # Dry-run: print command without executing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			root, cfg, err := resolveRepo(ctx)
			if err != nil {
				return err
			}

			hookEnv, err := hooks.ParseEnvWithStdin(env)
			if err != nil {
				return err
			}

			// Validate all hooks exist before running any
			var matches []hooks.HookMatch
			for _, name := range args {
				m, err := hooks.SelectHooks(cfg.Hooks, name, false, hooks.CommandRun)
				if err != nil {
					return err
				}
				matches = append(matches, m...)
			}

			l.Debug("running hooks", "hooks", args, "dryRun", dryRun)

			return hooks.RunAll(ctx, matches, hooks.Context{
				Doc:     cfg.DocPath(root),
				Repo:    root,
				Trigger: string(hooks.CommandRun),
				Env:     hookEnv,
				DryRun:  dryRun,
			})
		},
	}

	cmd.Flags().StringSliceVarP(&env, "arg", "a", nil, "Set hook variable KEY=VALUE")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Print command without executing")
	cmd.RegisterFlagCompletionFunc("arg", cobra.NoFileCompletions)

	return cmd
}

// completeHookArg completes hook names not already given.
func completeHookArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names, directive := completeHookNames(cmd, args, toComplete)

	var remaining []string
	for _, name := range names {
		if !slices.Contains(args, name) {
			remaining = append(remaining, name)
		}
	}
	return remaining, directive
}

// completeHookNames completes the effective hook names for the current repo.
func completeHookNames(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	_, cfg, err := resolveRepo(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, name := range hooks.Names(cfg.Hooks) {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
