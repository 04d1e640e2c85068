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

// ApproveCmd creates the task approve command.
func ApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <task-id>",
		Short: "Approve a task pending audit",
		Long:  "Approve a task so it moves into the execution queue. Only tasks pending audit can be approved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(cobraCmd, cmd.ModeHandlers{
				JSON: approveJSONHandler,
				TUI:  approveTUIHandler,
			}, args)
		},
	}
}

func approveTask(ctx context.Context, client *api.Client, args []string) (*enginetask.Task, error) {
	id, err := parseTaskID(args)
	if err != nil {
		return nil, err
	}
	if _, err := fetchForAction(ctx, client, id, enginetask.ActionApprove); err != nil {
		return nil, err
	}
	return client.Tasks().Approve(ctx, id)
}

func approveJSONHandler(ctx context.Context, _ *cobra.Command, client *api.Client, args []string) error {
	updated, err := approveTask(ctx, client, args)
	if err != nil {
		return err
	}
	return helpers.WriteJSON(os.Stdout, updated)
}

func approveTUIHandler(ctx context.Context, _ *cobra.Command, client *api.Client, args []string) error {
	updated, err := approveTask(ctx, client, args)
	if err != nil {
		return err
	}
	helpers.PrintSuccess("Task %d approved", updated.ID)
	fmt.Printf("Status: %s\n", updated.Status.Label())
	return nil
}
