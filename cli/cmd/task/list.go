package task

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cli/api"
	"github.com/taskdeck/taskdeck/cli/cmd"
	"github.com/taskdeck/taskdeck/cli/helpers"
	"github.com/taskdeck/taskdeck/cli/services"
	"github.com/taskdeck/taskdeck/cli/tui/components"
	enginetask "github.com/taskdeck/taskdeck/engine/task"
)

// ListCmd creates the task list command.
func ListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List tasks with optional status and creator filters. Pagination is server-side.",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(cobraCmd, cmd.ModeHandlers{
				JSON: listJSONHandler,
				TUI:  listTUIHandler,
			}, args)
		},
	}
	listCmd.Flags().Int("page", 1, "Page number")
	listCmd.Flags().Int("page-size", 20, "Items per page")
	listCmd.Flags().Int("status", 0, "Filter by status (1-6)")
	listCmd.Flags().Int("creator", 0, "Filter by creator id")
	return listCmd
}

func parseListFilters(cobraCmd *cobra.Command) (services.TaskFilters, error) {
	page, err := cobraCmd.Flags().GetInt("page")
	if err != nil {
		return services.TaskFilters{}, err
	}
	pageSize, err := cobraCmd.Flags().GetInt("page-size")
	if err != nil {
		return services.TaskFilters{}, err
	}
	status, err := cobraCmd.Flags().GetInt("status")
	if err != nil {
		return services.TaskFilters{}, err
	}
	if status < 0 || status > int(enginetask.StatusCancelled) {
		return services.TaskFilters{}, fmt.Errorf("invalid status filter: %d", status)
	}
	creator, err := cobraCmd.Flags().GetInt("creator")
	if err != nil {
		return services.TaskFilters{}, err
	}
	return services.TaskFilters{
		Page:      page,
		PageSize:  pageSize,
		Status:    enginetask.Status(status),
		CreatorID: creator,
	}, nil
}

func listJSONHandler(ctx context.Context, cobraCmd *cobra.Command, client *api.Client, _ []string) error {
	filters, err := parseListFilters(cobraCmd)
	if err != nil {
		return err
	}
	page, err := client.Tasks().List(ctx, filters)
	if err != nil {
		return err
	}
	return helpers.WriteJSON(os.Stdout, page)
}

func listTUIHandler(ctx context.Context, cobraCmd *cobra.Command, client *api.Client, _ []string) error {
	filters, err := parseListFilters(cobraCmd)
	if err != nil {
		return err
	}
	page, err := client.Tasks().List(ctx, filters)
	if err != nil {
		return err
	}
	table := components.NewTaskTable(enginetask.ToRows(page.Items), filters.Page, filters.PageSize, page.Total)
	fmt.Println(table.View())
	return nil
}
