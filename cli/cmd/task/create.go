package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/cli/api"
	"github.com/taskdeck/taskdeck/cli/cmd"
	"github.com/taskdeck/taskdeck/cli/helpers"
	"github.com/taskdeck/taskdeck/cli/tui/components"
	"github.com/taskdeck/taskdeck/cli/wizard"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/model"
	"github.com/taskdeck/taskdeck/engine/schema"
	enginetask "github.com/taskdeck/taskdeck/engine/task"
	"github.com/tidwall/gjson"
)

// CreateCmd creates the task create command.
func CreateCmd() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: "Create a new task against an open model. Interactive mode walks through model " +
			"selection and a schema-driven parameter form; non-interactive mode takes --model with " +
			"--input or --input-file.",
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runCreate(cobraCmd, args)
		},
	}
	createCmd.Flags().Int("model", 0, "Model id to submit against (required in non-interactive mode)")
	createCmd.Flags().StringSlice("input", []string{}, "Parameter in key=value format (repeatable)")
	createCmd.Flags().String("input-file", "", "Path to a JSON file of parameters, or - for stdin")
	return createCmd
}

func runCreate(cobraCmd *cobra.Command, args []string) error {
	executor, err := cmd.NewCommandExecutor(cobraCmd)
	if err != nil {
		return err
	}
	actor := enginetask.Identity{
		CreatorID:   executor.Config().Actor.ID,
		CreatorName: executor.Config().Actor.Name,
	}
	handlers := cmd.ModeHandlers{
		JSON: createNonInteractiveHandler(actor),
		TUI:  createWizardHandler(actor),
	}
	// An explicit --model forces the non-interactive path even on a TTY.
	if modelID, flagErr := cobraCmd.Flags().GetInt("model"); flagErr == nil && modelID > 0 {
		handlers.TUI = handlers.JSON
	}
	return executor.Execute(cobraCmd.Context(), cobraCmd, handlers, args)
}

// createNonInteractiveHandler submits directly from flags, validating the
// collected record against the model's declared schema first.
func createNonInteractiveHandler(actor enginetask.Identity) cmd.HandlerFunc {
	return func(ctx context.Context, cobraCmd *cobra.Command, client *api.Client, _ []string) error {
		modelID, err := cobraCmd.Flags().GetInt("model")
		if err != nil {
			return err
		}
		if modelID <= 0 {
			return fmt.Errorf("create requires --model in non-interactive mode")
		}
		values, err := parseCreateInputs(cobraCmd)
		if err != nil {
			return err
		}

		models, err := client.Models().ListOpenModels(ctx)
		if err != nil {
			return err
		}
		var selected *model.Summary
		for i := range models {
			if models[i].ID == modelID {
				selected = &models[i]
				break
			}
		}
		if selected == nil {
			return fmt.Errorf("model %d is not in the open model list", modelID)
		}

		modelSchema, err := client.Models().GetSchema(ctx, modelID)
		if err != nil {
			return err
		}
		if err := checkRequiredValues(modelSchema, values); err != nil {
			return err
		}

		created, err := client.Tasks().Submit(ctx, enginetask.NewSubmitBody(values, *selected, actor))
		if err != nil {
			return err
		}
		return helpers.WriteJSON(os.Stdout, created)
	}
}

// parseCreateInputs merges --input key=value pairs over --input-file.
// Values that parse as JSON keep their JSON type; everything else stays a
// string.
func parseCreateInputs(cobraCmd *cobra.Command) (map[string]any, error) {
	values := make(map[string]any)

	inputFile, err := cobraCmd.Flags().GetString("input-file")
	if err != nil {
		return nil, err
	}
	if inputFile != "" {
		data, err := helpers.ReadInputSource(inputFile)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, core.NewValidationError("input-file", "invalid JSON format")
		}
	}

	inputs, err := cobraCmd.Flags().GetStringSlice("input")
	if err != nil {
		return nil, err
	}
	for _, input := range inputs {
		parts := strings.SplitN(input, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid input format: %s (expected key=value)", input)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if gjson.Valid(value) {
			result := gjson.Parse(value)
			switch result.Type {
			case gjson.Number, gjson.True, gjson.False, gjson.JSON:
				values[key] = result.Value()
			default:
				values[key] = value
			}
		} else {
			values[key] = value
		}
	}
	return values, nil
}

// checkRequiredValues verifies every required schema field is present.
func checkRequiredValues(modelSchema *schema.ModelSchema, values map[string]any) error {
	for _, desc := range modelSchema.RequestBody {
		if !desc.Required {
			continue
		}
		if _, ok := values[desc.Name]; !ok {
			return &core.ValidationError{Reason: fmt.Sprintf("please enter %s", desc.Name)}
		}
	}
	return nil
}

// createWizardHandler runs the interactive two-step flow: select a model,
// fill the schema-driven form, submit. Cancelling at any point discards
// everything without creating a task.
func createWizardHandler(actor enginetask.Identity) cmd.HandlerFunc {
	return func(ctx context.Context, _ *cobra.Command, client *api.Client, _ []string) error {
		w := wizard.New(client.Models(), client.Tasks())
		defer w.Close()

		models, err := w.Open(ctx)
		if err != nil {
			return err
		}
		if len(models) == 0 {
			helpers.PrintInfo("No models are open for submission")
			return nil
		}

		for {
			modelID, ok, err := promptModelSelection(models)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := w.SelectModel(modelID); err != nil {
				return err
			}

			loaded, err := w.LoadSchema(ctx)
			if errors.Is(err, wizard.ErrSuperseded) {
				continue
			}
			if err != nil {
				helpers.PrintError("%v", err)
				continue
			}

			done, err := runParameterForm(ctx, w, loaded, actor)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			// The user backed out of the form; model selection again.
		}
	}
}

// promptModelSelection asks for one of the open models. ok is false when
// the user cancels.
func promptModelSelection(models []model.Summary) (int, bool, error) {
	var modelID int
	options := make([]huh.Option[int], 0, len(models))
	for _, m := range models {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (ID: %d)", m.Name, m.ID), m.ID))
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Select a model").
			Options(options...).
			Value(&modelID),
	))
	runner := components.NewFormRunner(form)
	final, err := tea.NewProgram(runner).Run()
	if err != nil {
		return 0, false, fmt.Errorf("failed to run model selection: %w", err)
	}
	if r, ok := final.(*components.FormRunner); ok && r.Completed() {
		return modelID, true, nil
	}
	return 0, false, nil
}

// runParameterForm loops the schema form until submission succeeds or the
// user backs out. A failed submission keeps the entered values so the form
// reopens prefilled.
func runParameterForm(
	ctx context.Context,
	w *wizard.Wizard,
	loaded *schema.ModelSchema,
	actor enginetask.Identity,
) (bool, error) {
	specs := loaded.RenderSpecs()
	for {
		fields := components.NewFieldSet(specs)
		if previous := w.Values(); previous != nil {
			fields.ApplyValues(previous)
		}

		if !fields.Empty() {
			runner := components.NewFormRunner(fields.Form())
			final, err := tea.NewProgram(runner).Run()
			if err != nil {
				return false, fmt.Errorf("failed to run parameter form: %w", err)
			}
			if r, ok := final.(*components.FormRunner); !ok || !r.Completed() {
				if backErr := w.Back(); backErr != nil {
					return false, backErr
				}
				return false, nil
			}
		}

		values, err := fields.Collect()
		if err != nil {
			helpers.PrintError("%v", err)
			continue
		}
		if err := w.SetValues(values); err != nil {
			return false, err
		}

		created, err := w.Submit(ctx, actor)
		if err != nil {
			var fetchErr *core.FetchError
			if errors.As(err, &fetchErr) {
				helpers.PrintError("%s", fetchErr.ServerMessage("submission failed, please retry"))
			} else {
				helpers.PrintError("%v", err)
			}
			continue
		}
		helpers.PrintSuccess("Task %d created", created.ID)
		fmt.Printf("Status: %s\n", created.Status.Label())
		return true, nil
	}
}
