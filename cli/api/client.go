// Package api implements the REST client for the task backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/taskdeck/taskdeck/cli/services"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/pkg/config"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// businessOK is the success value of the response-body status field. The
// backend reports outcomes there regardless of the HTTP transport status;
// callers must check it, not only the status code.
const businessOK = 200

// Client provides unified access to the backend API services.
type Client struct {
	client  *resty.Client
	baseURL string

	models services.ModelService
	tasks  services.TaskService
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	baseURL, err := buildBaseURL(cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		client:  buildHTTPClient(cfg, baseURL),
		baseURL: baseURL,
	}
	c.models = &modelService{client: c}
	c.tasks = &taskService{client: c}
	return c, nil
}

// Models returns the model catalog service.
func (c *Client) Models() services.ModelService { return c.models }

// Tasks returns the task lifecycle service.
func (c *Client) Tasks() services.TaskService { return c.tasks }

func buildBaseURL(cfg *config.Config) (string, error) {
	parsed, err := url.Parse(cfg.Server.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return "", fmt.Errorf("base URL must be absolute with a host, got: %s", cfg.Server.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("base URL scheme must be http or https, got: %s", parsed.Scheme)
	}
	return cfg.Server.BaseURL + "/api/v1", nil
}

func buildHTTPClient(cfg *config.Config, baseURL string) *resty.Client {
	timeout := cfg.Server.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Server.Token != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.Server.Token)
	}
	if cfg.CLI.LogLevel == "debug" {
		client.SetDebug(true)
	}
	return client
}

// apiEnvelope is the uniform response wrapper of every backend endpoint.
type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doRequest performs one API call and decodes the data member into out.
// Transport failures, non-2xx responses, and business-status rejections
// all surface as *core.FetchError carrying the server message when one
// exists.
func (c *Client) doRequest(ctx context.Context, operation, method, path string, body any, query url.Values, out any) error {
	log := logger.FromContext(ctx)

	var envelope apiEnvelope
	req := c.client.R().SetContext(ctx).SetResult(&envelope).SetError(&envelope)
	if body != nil {
		req.SetBody(body)
	}
	for key, values := range query {
		for _, value := range values {
			req.SetQueryParam(key, value)
		}
	}

	resp, err := executeRequest(req, method, path)
	if err != nil {
		return core.NewFetchError(operation, err)
	}

	if resp.StatusCode() >= 400 {
		return &core.FetchError{Operation: operation, Message: envelope.Message, Status: resp.StatusCode()}
	}
	if envelope.Status != businessOK {
		return &core.FetchError{Operation: operation, Message: envelope.Message, Status: envelope.Status}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return core.NewFetchError(operation, fmt.Errorf("unexpected response shape: %w", err))
		}
	}

	log.Debug("API request completed", "method", method, "path", path, "status", resp.StatusCode())
	return nil
}

func executeRequest(req *resty.Request, method, path string) (*resty.Response, error) {
	switch method {
	case "GET":
		return req.Get(path)
	case "POST":
		return req.Post(path)
	case "PUT":
		return req.Put(path)
	case "PATCH":
		return req.Patch(path)
	case "DELETE":
		return req.Delete(path)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}
}
