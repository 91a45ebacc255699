package main

import (
	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/doctor"
	"github.com/mementor/mementor/internal/git"
	"github.com/mementor/mementor/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var (
		fix   bool
		force bool
	)

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair setup issues",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose and repair setup issues.

Checks:
- git is installed
- the working directory is inside a git repository
- the configuration is valid
- the active document is readable
- the configured template is readable
- the snapshot archive exists
- the pre-commit hook is installed

--fix creates the archive directory and installs the pre-commit hook.`,
		Example: `  mementor doctor                # Check for issues
  mementor doctor --fix          # Auto-fix recoverable issues
  mementor doctor --fix --force  # Also replace a foreign pre-commit hook`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts := doctor.Options{Fix: fix, Force: force, ConfigErr: configErr}

			workDir := config.WorkDirFromContext(ctx)
			root, err := git.RepoRoot(ctx, workDir)
			if err == nil {
				opts.Root = root
			}
			if opts.ConfigErr == nil {
				cfgRoot := opts.Root
				if cfgRoot == "" {
					cfgRoot = workDir
				}
				opts.Config, opts.ConfigErr = configForRoot(ctx, cfgRoot)
			}

			if format != "" && format != string(output.FormatTable) {
				f, err := output.ParseFormat(format)
				if err != nil {
					return err
				}
				return output.FromContext(ctx).PrintStructured(f, doctor.Diagnose(ctx, opts))
			}

			return doctor.Run(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Auto-fix recoverable issues")
	cmd.Flags().BoolVar(&force, "force", false, "Let --fix replace an existing pre-commit hook")

	return cmd
}
