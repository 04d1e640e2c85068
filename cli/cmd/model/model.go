// Package model implements the model catalog commands.
package model

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cli/api"
	"github.com/taskdeck/taskdeck/cli/cmd"
	"github.com/taskdeck/taskdeck/cli/helpers"
	"github.com/taskdeck/taskdeck/cli/tui/styles"
)

// Cmd creates the model command group.
func Cmd() *cobra.Command {
	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Browse the model catalog",
	}
	modelCmd.AddCommand(ListCmd(), SchemaCmd())
	return modelCmd
}

// ListCmd creates the model list command.
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open models",
		Long:  "List the models currently open for task submission.",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(cobraCmd, cmd.ModeHandlers{
				JSON: listJSONHandler,
				TUI:  listTUIHandler,
			}, args)
		},
	}
}

func listJSONHandler(ctx context.Context, _ *cobra.Command, client *api.Client, _ []string) error {
	models, err := client.Models().ListOpenModels(ctx)
	if err != nil {
		return err
	}
	return helpers.WriteJSON(os.Stdout, models)
}

func listTUIHandler(ctx context.Context, _ *cobra.Command, client *api.Client, _ []string) error {
	models, err := client.Models().ListOpenModels(ctx)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		helpers.PrintInfo("No models are open for submission")
		return nil
	}
	fmt.Println(styles.TitleStyle.Render("Open models"))
	for _, m := range models {
		fmt.Printf("%4d  %s\n", m.ID, m.Name)
	}
	return nil
}

// SchemaCmd creates the model schema command.
func SchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <model-id>",
		Short: "Show a model's parameter schema",
		Long:  "Show the declared request parameters of one model, as rendered in the creation form.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(cobraCmd, cmd.ModeHandlers{
				JSON: schemaJSONHandler,
				TUI:  schemaTUIHandler,
			}, args)
		},
	}
}

func parseModelID(args []string) (int, error) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid model id: %s", args[0])
	}
	return id, nil
}

func schemaJSONHandler(ctx context.Context, _ *cobra.Command, client *api.Client, args []string) error {
	id, err := parseModelID(args)
	if err != nil {
		return err
	}
	modelSchema, err := client.Models().GetSchema(ctx, id)
	if err != nil {
		return err
	}
	return helpers.WriteJSON(os.Stdout, modelSchema)
}

func schemaTUIHandler(ctx context.Context, _ *cobra.Command, client *api.Client, args []string) error {
	id, err := parseModelID(args)
	if err != nil {
		return err
	}
	modelSchema, err := client.Models().GetSchema(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(styles.TitleStyle.Render(fmt.Sprintf("Model %d parameters", id)))
	for _, spec := range modelSchema.RenderSpecs() {
		marker := " "
		if spec.Descriptor.Required {
			marker = styles.WarningStyle.Render("*")
		}
		line := fmt.Sprintf("%s %-20s %-14s", marker, spec.Descriptor.Name, spec.Category)
		if spec.Descriptor.Description != "" {
			line += "  " + styles.SubtleStyle.Render(spec.Descriptor.Description)
		}
		fmt.Println(line)
	}
	return nil
}
