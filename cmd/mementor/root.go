package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	format  string

	// configErr is the error from loading the global config, if any.
	// Commands fall back to defaults; doctor reports it.
	configErr error
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupGit     = "git"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mementor",
	Short: "Document health metrics and snapshots",
	Long: `mementor analyzes the health of your project documentation.

It computes metrics for the active context document (size, structure,
readability, links, progress), archives versioned snapshots of it and
can take a snapshot automatically whenever documentation is committed.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Validate mutually exclusive flags
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}
		if _, err := output.ParseFormat(format); err != nil {
			return err
		}

		// Logger depends on parsed flags, so it is attached here
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		configErr = err
		loadedCfg = config.Default()
	}

	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mementor: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Styles follow what stdout can display
	styles.Init(colorprofile.Detect(os.Stdout, os.Environ()))

	// Output printer (stdout for primary data), downsampling colors for pipes
	ctx = output.WithPrinter(ctx, colorprofile.NewWriter(os.Stdout, os.Environ()))

	ctx = config.WithResolver(ctx, config.NewResolver(&loadedCfg))
	ctx = config.WithWorkDir(ctx, workDir)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'mementor -h' for help")
		cancel()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format: table, json, yaml (default from config)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(output.Formats, cobra.ShellCompDirectiveNoFileComp))

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupGit, Title: "Git Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newRenderCmd())

	// Git commands
	rootCmd.AddCommand(newPrecommitCmd())

	// Utility commands
	rootCmd.AddCommand(newHookCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
