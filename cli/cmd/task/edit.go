package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cli/api"
	"github.com/taskdeck/taskdeck/cli/cmd"
	"github.com/taskdeck/taskdeck/cli/helpers"
	"github.com/taskdeck/taskdeck/cli/tui/components"
	enginetask "github.com/taskdeck/taskdeck/engine/task"
)

// EditCmd creates the task edit command.
func EditCmd() *cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task's parameters",
		Long: "Edit the stored parameters of a task pending audit. " +
			"Only the parameter record is replaced; the rest of the stored envelope is preserved as-is.",
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(cobraCmd, cmd.ModeHandlers{
				JSON: editJSONHandler,
				TUI:  editTUIHandler,
			}, args)
		},
	}
	editCmd.Flags().String("input", "", "Edited parameter record as a JSON string")
	editCmd.Flags().String("input-file", "", "Path to a JSON file with the edited parameter record, or - for stdin")
	return editCmd
}

// editedText resolves the edited record from flags. Empty means the caller
// gave no non-interactive input.
func editedText(cobraCmd *cobra.Command) (string, error) {
	input, err := cobraCmd.Flags().GetString("input")
	if err != nil {
		return "", err
	}
	if input != "" {
		return input, nil
	}
	inputFile, err := cobraCmd.Flags().GetString("input-file")
	if err != nil {
		return "", err
	}
	if inputFile == "" {
		return "", nil
	}
	data, err := helpers.ReadInputSource(inputFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func applyAndUpdate(
	ctx context.Context,
	client *api.Client,
	t *enginetask.Task,
	text string,
) (*enginetask.Task, error) {
	body, err := enginetask.ApplyEdit(t, text)
	if err != nil {
		return nil, err
	}
	return client.Tasks().Update(ctx, t.ID, body)
}

func editJSONHandler(ctx context.Context, cobraCmd *cobra.Command, client *api.Client, args []string) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	text, err := editedText(cobraCmd)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("edit requires --input or --input-file in non-interactive mode")
	}
	t, err := fetchForAction(ctx, client, id, enginetask.ActionEdit)
	if err != nil {
		return err
	}
	updated, err := applyAndUpdate(ctx, client, t, text)
	if err != nil {
		return err
	}
	return helpers.WriteJSON(os.Stdout, updated)
}

func editTUIHandler(ctx context.Context, cobraCmd *cobra.Command, client *api.Client, args []string) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	t, err := fetchForAction(ctx, client, id, enginetask.ActionEdit)
	if err != nil {
		return err
	}

	// Flags still work in TUI mode; they skip the editor.
	text, err := editedText(cobraCmd)
	if err != nil {
		return err
	}
	if text == "" {
		text, err = promptEditedText(t)
		if err != nil {
			return err
		}
		if text == "" {
			helpers.PrintInfo("Edit cancelled, task %d unchanged", t.ID)
			return nil
		}
	}

	updated, err := applyAndUpdate(ctx, client, t, text)
	if err != nil {
		return err
	}
	helpers.PrintSuccess("Task %d updated", updated.ID)
	return nil
}

// promptEditedText opens the parameter record in a JSON text editor. An
// empty return means the user cancelled.
func promptEditedText(t *enginetask.Task) (string, error) {
	text, err := enginetask.PrepareEdit(t)
	if err != nil {
		return "", err
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(fmt.Sprintf("Task %d parameters", t.ID)).
			Description("Edit the JSON record and confirm").
			Lines(12).
			Value(&text).
			Validate(func(v string) error {
				if !json.Valid([]byte(v)) {
					return fmt.Errorf("invalid JSON format")
				}
				return nil
			}),
	))
	runner := components.NewFormRunner(form)
	final, err := tea.NewProgram(runner).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run editor: %w", err)
	}
	if r, ok := final.(*components.FormRunner); ok && r.Completed() {
		return text, nil
	}
	return "", nil
}
