package api

import (
	"context"
	"fmt"

	"github.com/taskdeck/taskdeck/engine/model"
	"github.com/taskdeck/taskdeck/engine/schema"
)

// modelService implements services.ModelService.
type modelService struct {
	client *Client
}

func (s *modelService) ListOpenModels(ctx context.Context) ([]model.Summary, error) {
	var models []model.Summary
	if err := s.client.doRequest(ctx, "list models", "GET", "/models/names", nil, nil, &models); err != nil {
		return nil, err
	}
	return model.FilterOpen(models), nil
}

func (s *modelService) GetSchema(ctx context.Context, modelID int) (*schema.ModelSchema, error) {
	var result schema.ModelSchema
	path := fmt.Sprintf("/models/%d/parameters", modelID)
	if err := s.client.doRequest(ctx, "load model configuration", "GET", path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
