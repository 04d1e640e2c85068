// Package cli assembles the taskdeck command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	modelcmd "github.com/taskdeck/taskdeck/cli/cmd/model"
	taskcmd "github.com/taskdeck/taskdeck/cli/cmd/task"
	"github.com/taskdeck/taskdeck/cli/helpers"
	"github.com/taskdeck/taskdeck/pkg/config"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// RootCmd builds the root command. Configuration loads once in the
// persistent pre-run and rides the context into every subcommand.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskdeck",
		Short:         "Submit and track AI tasks",
		Long:          "taskdeck submits tasks against schema-described AI models and tracks them through audit, execution, and completion.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupContext(cmd)
		},
	}

	root.PersistentFlags().String("format", "", "Output format: auto, json, or tui")
	root.PersistentFlags().Bool("json", false, "Shorthand for --format json")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	root.PersistentFlags().Bool("no-color", false, "Disable styled output")

	root.AddCommand(
		taskcmd.Cmd(),
		modelcmd.Cmd(),
	)
	return root
}

// setupContext loads configuration, applies flag overrides, and attaches
// the configuration and logger to the command context.
func setupContext(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logger.SetupLogger(cfg.CLI.LogLevel, cfg.CLI.LogJSON)
	ctx := logger.ContextWithLogger(cmd.Context(), log)
	ctx = helpers.ContextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)
	return nil
}

// applyFlagOverrides lets flags win over environment and defaults. The
// flags live on the root's persistent set regardless of which subcommand
// is running.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("format") {
		format, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.CLI.Format = format
	}
	if jsonOut, err := flags.GetBool("json"); err == nil && jsonOut {
		cfg.CLI.Format = "json"
	}
	if flags.Changed("log-level") {
		level, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		cfg.CLI.LogLevel = level
	}
	if flags.Changed("log-json") {
		logJSON, err := flags.GetBool("log-json")
		if err != nil {
			return err
		}
		cfg.CLI.LogJSON = logJSON
	}
	if flags.Changed("no-color") {
		noColor, err := flags.GetBool("no-color")
		if err != nil {
			return err
		}
		cfg.CLI.NoColor = noColor
	}
	if cfg.CLI.Format != "" && cfg.CLI.Format != "auto" && cfg.CLI.Format != "json" && cfg.CLI.Format != "tui" {
		return fmt.Errorf("invalid format: %s (expected auto, json, or tui)", cfg.CLI.Format)
	}
	return nil
}
