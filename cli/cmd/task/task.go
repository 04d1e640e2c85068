// Package task implements the task lifecycle commands: create, list,
// show, approve, edit, and cancel.
package task

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cli/api"
	"github.com/taskdeck/taskdeck/engine/core"
	enginetask "github.com/taskdeck/taskdeck/engine/task"
)

// Cmd creates the task command group.
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage AI tasks",
		Long:  "Create, track, and act on AI task submissions.",
	}
	cmd.AddCommand(
		CreateCmd(),
		ListCmd(),
		ShowCmd(),
		ApproveCmd(),
		EditCmd(),
		CancelCmd(),
	)
	return cmd
}

// parseTaskID parses the positional task id argument.
func parseTaskID(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}

// fetchForAction fetches the task and checks the client-side action gate.
// The server re-validates on the actual call; this just avoids offering
// calls that are already known to be stale.
func fetchForAction(
	ctx context.Context,
	client *api.Client,
	id int,
	action enginetask.Action,
) (*enginetask.Task, error) {
	t, err := client.Tasks().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !enginetask.PermittedActions(t)[action] {
		return nil, &core.StateError{TaskID: t.ID, Action: string(action)}
	}
	return t, nil
}
