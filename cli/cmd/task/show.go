package task

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cli/api"
	"github.com/taskdeck/taskdeck/cli/cmd"
	"github.com/taskdeck/taskdeck/cli/helpers"
	"github.com/taskdeck/taskdeck/cli/tui/components"
	"github.com/taskdeck/taskdeck/cli/tui/styles"
	enginetask "github.com/taskdeck/taskdeck/engine/task"
)

// ShowCmd creates the task show command.
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Long:  "Show the full detail of one task, including its stored parameters.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(cobraCmd, cmd.ModeHandlers{
				JSON: showJSONHandler,
				TUI:  showTUIHandler,
			}, args)
		},
	}
}

func showJSONHandler(ctx context.Context, _ *cobra.Command, client *api.Client, args []string) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	t, err := client.Tasks().Get(ctx, id)
	if err != nil {
		return err
	}
	return helpers.WriteJSON(os.Stdout, t)
}

func showTUIHandler(ctx context.Context, _ *cobra.Command, client *api.Client, args []string) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	t, err := client.Tasks().Get(ctx, id)
	if err != nil {
		return err
	}
	printTaskDetail(t)
	return nil
}

func printTaskDetail(t *enginetask.Task) {
	row := enginetask.ToRow(t)
	fmt.Println(styles.TitleStyle.Render(fmt.Sprintf("Task %d", t.ID)))
	fmt.Printf("Status:   %s\n", components.StatusStyle(row.Severity).Render(row.StatusLabel))
	fmt.Printf("Creator:  %s\n", row.Creator)
	fmt.Printf("Retries:  %s\n", row.Retries)
	fmt.Printf("Created:  %s\n", row.CreatedAt)
	fmt.Printf("Updated:  %s\n", row.UpdatedAt)
	if t.ResultURL != "" {
		fmt.Printf("Result:   %s\n", t.ResultURL)
	}
	if t.ErrorLog != "" {
		fmt.Printf("Errors:   %s\n", styles.ErrorStyle.Render(t.ErrorLog))
	}
	if params, err := enginetask.PrepareEdit(t); err == nil {
		fmt.Println(styles.SubtleStyle.Render("Parameters:"))
		fmt.Println(params)
	}
}
