package task

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cli/api"
	"github.com/taskdeck/taskdeck/cli/cmd"
	"github.com/taskdeck/taskdeck/cli/helpers"
	enginetask "github.com/taskdeck/taskdeck/engine/task"
)

// CancelCmd creates the task cancel command.
func CancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <task-id>",
		Short: "Cancel a task",
		Long:  "Cancel a task that has not yet reached a terminal status.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(cobraCmd, cmd.ModeHandlers{
				JSON: cancelJSONHandler,
				TUI:  cancelTUIHandler,
			}, args)
		},
	}
}

func cancelTask(ctx context.Context, client *api.Client, args []string) (*enginetask.Task, error) {
	id, err := parseTaskID(args)
	if err != nil {
		return nil, err
	}
	if _, err := fetchForAction(ctx, client, id, enginetask.ActionCancel); err != nil {
		return nil, err
	}
	return client.Tasks().Cancel(ctx, id)
}

func cancelJSONHandler(ctx context.Context, _ *cobra.Command, client *api.Client, args []string) error {
	updated, err := cancelTask(ctx, client, args)
	if err != nil {
		return err
	}
	return helpers.WriteJSON(os.Stdout, updated)
}

func cancelTUIHandler(ctx context.Context, _ *cobra.Command, client *api.Client, args []string) error {
	updated, err := cancelTask(ctx, client, args)
	if err != nil {
		return err
	}
	helpers.PrintSuccess("Task %d cancelled", updated.ID)
	fmt.Printf("Status: %s\n", updated.Status.Label())
	return nil
}
