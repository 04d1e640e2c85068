// Package wizard coordinates the two-step task creation flow: resolve a
// model selection to its parameter schema, collect form values against the
// schema, then submit the assembled envelope.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/taskdeck/taskdeck/cli/services"
	"github.com/taskdeck/taskdeck/engine/model"
	"github.com/taskdeck/taskdeck/engine/schema"
	"github.com/taskdeck/taskdeck/engine/task"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// State is the wizard's position in the creation flow.
type State int

const (
	StateClosed State = iota
	StateSelectingModel
	StateConfiguringParameters
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateSelectingModel:
		return "selecting-model"
	case StateConfiguringParameters:
		return "configuring-parameters"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrSuperseded marks a schema fetch whose result arrived after a newer
// selection took over. Callers discard it without surfacing an error.
var ErrSuperseded = errors.New("schema fetch superseded by a newer selection")

// Wizard owns all in-progress creation state for one session. A single
// instance runs at a time; the mutex only guards against a stale in-flight
// schema fetch racing a newer one.
type Wizard struct {
	mu      sync.Mutex
	catalog services.ModelService
	tasks   services.TaskService

	state    State
	models   []model.Summary
	selected *model.Summary
	schema   *schema.ModelSchema
	values   map[string]any

	// generation orders schema fetches so the latest selection wins.
	generation  uint64
	cancelFetch context.CancelFunc
}

// New creates a closed wizard over the given services.
func New(catalog services.ModelService, tasks services.TaskService) *Wizard {
	return &Wizard{catalog: catalog, tasks: tasks}
}

// State reports the current position in the flow.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Models returns the catalog snapshot loaded at open time.
func (w *Wizard) Models() []model.Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.models
}

// Schema returns the schema loaded for the current selection, if any.
func (w *Wizard) Schema() *schema.ModelSchema {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.schema
}

// Selected returns the currently selected model, if any.
func (w *Wizard) Selected() *model.Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selected == nil {
		return nil
	}
	selected := *w.selected
	return &selected
}

// Values returns the collected form record.
func (w *Wizard) Values() map[string]any {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.values
}

// Open starts a session: it fetches the open models and moves to model
// selection. The catalog snapshot lives for this session only.
func (w *Wizard) Open(ctx context.Context) ([]model.Summary, error) {
	w.mu.Lock()
	if w.state != StateClosed {
		w.mu.Unlock()
		return nil, fmt.Errorf("wizard already open in state %s", w.state)
	}
	w.mu.Unlock()

	models, err := w.catalog.ListOpenModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load model list: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = StateSelectingModel
	w.models = models
	return models, nil
}

// SelectModel records the user's choice. Re-selecting while a schema fetch
// is outstanding cancels that fetch; its late result is discarded.
func (w *Wizard) SelectModel(modelID int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelectingModel && w.state != StateConfiguringParameters {
		return fmt.Errorf("no model selection in state %s", w.state)
	}
	for i := range w.models {
		if w.models[i].ID == modelID {
			w.abandonFetchLocked()
			w.selected = &w.models[i]
			w.schema = nil
			w.values = nil
			w.state = StateSelectingModel
			return nil
		}
	}
	return fmt.Errorf("model %d is not in the open model list", modelID)
}

// LoadSchema advances SelectingModel -> ConfiguringParameters by fetching
// the selected model's schema. On failure the wizard stays on model
// selection. Overlapping calls resolve last-request-wins: a slow earlier
// fetch cannot overwrite a later one.
func (w *Wizard) LoadSchema(ctx context.Context) (*schema.ModelSchema, error) {
	w.mu.Lock()
	if w.state != StateSelectingModel {
		w.mu.Unlock()
		return nil, fmt.Errorf("no schema to load in state %s", w.state)
	}
	if w.selected == nil {
		w.mu.Unlock()
		return nil, fmt.Errorf("no model selected")
	}
	w.abandonFetchLocked()
	fetchCtx, cancel := context.WithCancel(ctx)
	w.cancelFetch = cancel
	w.generation++
	gen := w.generation
	selected := *w.selected
	w.mu.Unlock()

	loaded, err := w.catalog.GetSchema(fetchCtx, selected.ID)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		logger.FromContext(ctx).Debug("discarding stale schema fetch", "model_id", selected.ID, "generation", gen)
		return nil, ErrSuperseded
	}
	w.cancelFetch = nil
	if err != nil {
		return nil, fmt.Errorf("failed to load model configuration: %w", err)
	}
	w.schema = loaded
	w.state = StateConfiguringParameters
	return loaded, nil
}

// Back returns from parameter configuration to model selection, keeping
// the catalog snapshot and current selection.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateConfiguringParameters {
		return fmt.Errorf("cannot go back in state %s", w.state)
	}
	w.state = StateSelectingModel
	w.schema = nil
	w.values = nil
	return nil
}

// SetValues stores the collected flat record from the form.
func (w *Wizard) SetValues(values map[string]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateConfiguringParameters {
		return fmt.Errorf("no form to fill in state %s", w.state)
	}
	w.values = values
	return nil
}

// Submit builds the submission envelope and creates the task. On success
// the wizard closes and all session state is cleared; on failure it stays
// on parameter configuration with the form record intact so the user can
// retry without re-entering data.
func (w *Wizard) Submit(ctx context.Context, actor task.Identity) (*task.Task, error) {
	w.mu.Lock()
	if w.state != StateConfiguringParameters {
		w.mu.Unlock()
		return nil, fmt.Errorf("nothing to submit in state %s", w.state)
	}
	if w.selected == nil || w.values == nil {
		w.mu.Unlock()
		return nil, fmt.Errorf("submission requires a selected model and collected values")
	}
	body := task.NewSubmitBody(w.values, *w.selected, actor)
	w.state = StateSubmitting
	w.mu.Unlock()

	created, err := w.tasks.Submit(ctx, body)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StateConfiguringParameters
		return nil, err
	}
	w.resetLocked()
	return created, nil
}

// Close discards all in-progress state from any state. No partial task is
// ever created.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.abandonFetchLocked()
	w.resetLocked()
}

func (w *Wizard) resetLocked() {
	w.state = StateClosed
	w.models = nil
	w.selected = nil
	w.schema = nil
	w.values = nil
}

// abandonFetchLocked cancels the outstanding schema fetch, if any, and
// bumps the generation so its late result is discarded.
func (w *Wizard) abandonFetchLocked() {
	if w.cancelFetch != nil {
		w.cancelFetch()
		w.cancelFetch = nil
	}
	w.generation++
}
