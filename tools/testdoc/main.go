// Command testdoc generates markdown documentation from Go test functions
// and their doc comments.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "testdoc:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		rootDir         string
		outputFile      string
		integrationOnly bool
	)

	cmd := &cobra.Command{
		Use:   "testdoc",
		Short: "Generate markdown documentation from test doc comments",
		Long: `Generate markdown documentation from test doc comments.

Test comments may carry "Scenario:" and "Expected:" lines; they are
rendered as separate columns.`,
		Example: `  go run ./tools/testdoc                    # Write docs/TESTS.md
  go run ./tools/testdoc --integration      # Integration tests only
  go run ./tools/testdoc -o - | less        # Print to stdout`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			absRoot, err := filepath.Abs(rootDir)
			if err != nil {
				return fmt.Errorf("resolve root directory: %w", err)
			}

			packages, err := ParseTestFiles(absRoot, integrationOnly)
			if err != nil {
				return fmt.Errorf("parse test files: %w", err)
			}

			var buf bytes.Buffer
			if err := RenderMarkdown(&buf, packages, time.Now()); err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}

			if outputFile == "-" {
				_, err := os.Stdout.Write(buf.Bytes())
				return err
			}
			if err := storage.WriteFile(outputFile, buf.Bytes(), 0o644); err != nil {
				return err
			}

			fmt.Printf("Generated %s with %d packages\n", outputFile, len(packages))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rootDir, "root", "r", ".", "Root directory to scan for test files")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "docs/TESTS.md", "Output markdown file, - for stdout")
	cmd.Flags().BoolVar(&integrationOnly, "integration", false, "Only include integration tests (*_integration_test.go)")

	return cmd
}
