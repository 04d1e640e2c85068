// Package services declares the client-side interfaces to the task
// backend. Implementations live in cli/api; consumers depend on these
// interfaces so tests can substitute fakes.
package services

import (
	"context"

	"github.com/taskdeck/taskdeck/engine/model"
	"github.com/taskdeck/taskdeck/engine/schema"
	"github.com/taskdeck/taskdeck/engine/task"
)

// ModelService reads the model catalog. No caching: every wizard open
// re-fetches the list, and schemas are fetched fresh per selection.
type ModelService interface {
	// ListOpenModels returns the selectable models. An empty result is
	// "no selectable models", not an error.
	ListOpenModels(ctx context.Context) ([]model.Summary, error)

	// GetSchema fetches the declared parameter schema of one model. It
	// fails when the id no longer exists, e.g. the catalog changed
	// between list and select.
	GetSchema(ctx context.Context, modelID int) (*schema.ModelSchema, error)
}

// TaskFilters narrows a task list request.
type TaskFilters struct {
	Page      int
	PageSize  int
	Status    task.Status
	CreatorID int
}

// TaskPage is one fetched page of tasks.
type TaskPage struct {
	Total int         `json:"total"`
	Items []task.Task `json:"items"`
}

// TaskService covers the task lifecycle calls. Every mutation returns the
// server's view of the task; the client replaces its local copy with it.
type TaskService interface {
	Submit(ctx context.Context, body task.SubmitBody) (*task.Task, error)
	List(ctx context.Context, filters TaskFilters) (*TaskPage, error)
	Get(ctx context.Context, id int) (*task.Task, error)
	Approve(ctx context.Context, id int) (*task.Task, error)
	Update(ctx context.Context, id int, body task.UpdateBody) (*task.Task, error)
	Cancel(ctx context.Context, id int) (*task.Task, error)
}
