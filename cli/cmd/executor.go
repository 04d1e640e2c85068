package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cli/api"
	"github.com/taskdeck/taskdeck/cli/helpers"
	"github.com/taskdeck/taskdeck/pkg/config"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// CommandExecutor handles the shared setup every command needs: resolved
// configuration, a backend client, and the detected output mode.
type CommandExecutor struct {
	client *api.Client
	config *config.Config
	mode   helpers.Mode
}

// HandlerFunc is the signature for command handlers. Handlers can ignore
// args when they take none.
type HandlerFunc func(ctx context.Context, cmd *cobra.Command, client *api.Client, args []string) error

// ModeHandlers contains the handlers for the two execution modes.
type ModeHandlers struct {
	JSON HandlerFunc
	TUI  HandlerFunc
}

// NewCommandExecutor builds the executor from the configuration the root
// command attached to the context.
func NewCommandExecutor(cmd *cobra.Command) (*CommandExecutor, error) {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	cfg := helpers.ConfigFromContext(ctx)
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	mode := helpers.DetectMode(cmd)
	log.Debug("detected mode", "mode", mode)

	return &CommandExecutor{
		client: client,
		config: cfg,
		mode:   mode,
	}, nil
}

// Execute runs the handler matching the detected mode.
func (e *CommandExecutor) Execute(ctx context.Context, cmd *cobra.Command, handlers ModeHandlers, args []string) error {
	switch e.mode {
	case helpers.ModeJSON:
		if handlers.JSON == nil {
			return fmt.Errorf("JSON mode handler not implemented")
		}
		return handlers.JSON(ctx, cmd, e.client, args)
	case helpers.ModeTUI:
		if handlers.TUI == nil {
			return fmt.Errorf("TUI mode handler not implemented")
		}
		return handlers.TUI(ctx, cmd, e.client, args)
	default:
		return fmt.Errorf("unsupported mode: %s", e.mode)
	}
}

// Client returns the configured backend client.
func (e *CommandExecutor) Client() *api.Client {
	return e.client
}

// Config returns the resolved configuration.
func (e *CommandExecutor) Config() *config.Config {
	return e.config
}

// Mode returns the detected execution mode.
func (e *CommandExecutor) Mode() helpers.Mode {
	return e.mode
}

// ExecuteCommand combines executor creation and execution; the main entry
// point for command RunE functions.
func ExecuteCommand(cmd *cobra.Command, handlers ModeHandlers, args []string) error {
	executor, err := NewCommandExecutor(cmd)
	if err != nil {
		return err
	}
	return executor.Execute(cmd.Context(), cmd, handlers, args)
}
