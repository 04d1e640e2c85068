package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/taskdeck/taskdeck/cli/services"
	"github.com/taskdeck/taskdeck/engine/task"
)

// taskService implements services.TaskService.
type taskService struct {
	client *Client
}

func (s *taskService) Submit(ctx context.Context, body task.SubmitBody) (*task.Task, error) {
	var created task.Task
	if err := s.client.doRequest(ctx, "submit task", "POST", "/tasks", body, nil, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *taskService) List(ctx context.Context, filters services.TaskFilters) (*services.TaskPage, error) {
	query := url.Values{}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filters.PageSize))
	}
	if filters.Status != 0 {
		query.Set("status", strconv.Itoa(int(filters.Status)))
	}
	if filters.CreatorID != 0 {
		query.Set("creator_id", strconv.Itoa(filters.CreatorID))
	}

	var page services.TaskPage
	if err := s.client.doRequest(ctx, "list tasks", "GET", "/tasks", nil, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *taskService) Get(ctx context.Context, id int) (*task.Task, error) {
	var result task.Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := s.client.doRequest(ctx, "load task detail", "GET", path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *taskService) Approve(ctx context.Context, id int) (*task.Task, error) {
	var result task.Task
	path := fmt.Sprintf("/tasks/%d/approve", id)
	if err := s.client.doRequest(ctx, "approve task", "PATCH", path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *taskService) Update(ctx context.Context, id int, body task.UpdateBody) (*task.Task, error) {
	var result task.Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := s.client.doRequest(ctx, "update task", "PUT", path, body, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *taskService) Cancel(ctx context.Context, id int) (*task.Task, error) {
	var result task.Task
	path := fmt.Sprintf("/tasks/%d/cancel", id)
	if err := s.client.doRequest(ctx, "cancel task", "POST", path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
