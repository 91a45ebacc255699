package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/git"
	"github.com/mementor/mementor/internal/hooks"
	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/output"
	"github.com/mementor/mementor/internal/storage"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage mementor configuration.

Global config: ~/.config/mementor/config.toml (or $MEMENTOR_CONFIG)
Local config:  .mementor.toml (in the repository root)

MEMENTOR_ACTIVE_DOC, MEMENTOR_ARCHIVE_DIR and MEMENTOR_SNAPSHOT_EXT
override both, from the environment or a .env file in the repository root.`,
		Example: `  mementor config init          # Create default global config
  mementor config init --local  # Create local repo config
  mementor config show          # Show effective config
  mementor config hooks         # List available hooks`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigHooksCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config.
With --local, creates .mementor.toml in the current repository root.`,
		Example: `  mementor config init           # Create global config
  mementor config init --local   # Create local repo config
  mementor config init --force   # Overwrite existing config
  mementor config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			content := config.DefaultConfig()
			if local {
				content = config.DefaultLocalConfig()
			}

			if stdout {
				out.Print(content)
				return nil
			}

			if !local {
				path, err := config.GlobalPath()
				if err != nil {
					return err
				}
				if err := config.Init(path, force); err != nil {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				out.Printf("Created config file: %s\n", path)
				return nil
			}

			root, err := git.RepoRoot(ctx, config.WorkDirFromContext(ctx))
			if err != nil {
				return err
			}
			path := filepath.Join(root, config.LocalConfigFileName)

			if force {
				err = storage.WriteFile(path, []byte(content), 0o644)
			} else {
				err = storage.WriteNew(path, []byte(content), 0o644)
			}
			if errors.Is(err, storage.ErrExists) {
				return fmt.Errorf("local config already exists: %s (use --force to overwrite)", path)
			}
			if err != nil {
				return err
			}
			out.Printf("Created local config: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .mementor.toml instead of global config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Prints the global config merged with .mementor.toml and environment
overrides for the current repository, as TOML or with --format as JSON
or YAML.`,
		Example: `  mementor config show           # Show effective config as TOML
  mementor config show -f json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, cfg, err := resolveRepo(ctx)
			if err != nil {
				return err
			}

			doc, err := encodeConfig(cfg)
			if err != nil {
				return err
			}

			f, err := outputFormat(cfg)
			if err != nil {
				return err
			}
			if f != output.FormatTable {
				var m map[string]any
				if _, err := toml.Decode(string(doc), &m); err != nil {
					return err
				}
				return out.PrintStructured(f, m)
			}

			if path, err := config.GlobalPath(); err == nil {
				l.Printf("Global config: %s\n", path)
			}
			localPath := filepath.Join(root, config.LocalConfigFileName)
			if _, err := os.Stat(localPath); err == nil {
				l.Printf("Local config:  %s\n", localPath)
			} else {
				l.Printf("Local config:  (none)\n")
			}

			out.Print(string(doc))
			return nil
		},
	}

	return cmd
}

// encodeConfig renders cfg as TOML, hooks included as [hooks.NAME] tables.
func encodeConfig(cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if len(cfg.Hooks.Hooks) > 0 {
		buf.WriteString("\n")
		if err := enc.Encode(map[string]any{"hooks": cfg.Hooks.Hooks}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// hookInfo describes a hook for 'config hooks'.
type hookInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Source      string   `json:"source" yaml:"source"`
	Command     string   `json:"command" yaml:"command"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	On          []string `json:"on,omitempty" yaml:"on,omitempty"`
}

func newConfigHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "List available hooks",
		Args:  cobra.NoArgs,
		Long: `List available hooks.

Shows the effective hooks for the current repository and whether each
comes from the global config, the local config, or overrides a global
hook locally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			root, cfg, err := resolveRepo(ctx)
			if err != nil {
				return err
			}

			local, err := config.LoadLocal(root)
			if err != nil {
				l.Printf("Warning: failed to load local config: %v\n", err)
			}
			global := config.ResolverFromContext(ctx).Global()

			var infos []hookInfo
			for _, name := range hooks.Names(cfg.Hooks) {
				hook := cfg.Hooks.Hooks[name]
				infos = append(infos, hookInfo{
					Name:        name,
					Source:      hookSource(name, global, local),
					Command:     hook.Command,
					Description: hook.Description,
					On:          hook.On,
				})
			}

			f, err := outputFormat(cfg)
			if err != nil {
				return err
			}
			if f != output.FormatTable {
				return out.PrintStructured(f, infos)
			}

			if len(infos) == 0 {
				out.Println("No hooks configured")
				return nil
			}

			for _, h := range infos {
				out.Printf("%s: [%s]\n", h.Name, h.Source)
				out.Printf("  command: %s\n", h.Command)
				if h.Description != "" {
					out.Printf("  description: %s\n", h.Description)
				}
				if len(h.On) > 0 {
					out.Printf("  on: %v\n", h.On)
				}
				out.Println()
			}
			return nil
		},
	}

	return cmd
}

// hookSource reports where an effective hook is defined.
func hookSource(name string, global *config.Config, local *config.LocalConfig) string {
	if local != nil {
		if _, inLocal := local.Hooks.Hooks[name]; inLocal {
			if _, inGlobal := global.Hooks.Hooks[name]; inGlobal {
				return "local (override)"
			}
			return "local"
		}
	}
	return "global"
}
