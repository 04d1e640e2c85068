package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/cli/services"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/task"
	"github.com/taskdeck/taskdeck/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Server.BaseURL = server.URL
	cfg.Server.Token = "test-token"
	cfg.Actor = config.Actor{ID: 1, Name: "tester"}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func TestNewClient(t *testing.T) {
	t.Run("Should reject missing configuration", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.Error(t, err)
	})

	t.Run("Should reject relative base URL", func(t *testing.T) {
		cfg := config.Default()
		cfg.Server.BaseURL = "localhost:8080"
		_, err := NewClient(cfg)
		assert.Error(t, err)
	})
}

func TestModelService(t *testing.T) {
	t.Run("Should list only open models", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/models/names", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			writeEnvelope(w, 200, "", []map[string]any{
				{"id": 7, "name": "Flux", "url": "https://x/flux", "status": "open"},
				{"id": 8, "name": "Old", "url": "https://x/old", "status": "closed"},
			})
		}))

		models, err := client.Models().ListOpenModels(context.Background())
		require.NoError(t, err)
		require.Len(t, models, 1)
		assert.Equal(t, "Flux", models[0].Name)
	})

	t.Run("Should treat empty catalog as no selectable models", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeEnvelope(w, 200, "", []any{})
		}))

		models, err := client.Models().ListOpenModels(context.Background())
		require.NoError(t, err)
		assert.Empty(t, models)
	})

	t.Run("Should surface business-status failure as fetch error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			// HTTP 200 with a failing business status.
			writeEnvelope(w, 404, "model not found", nil)
		}))

		_, err := client.Models().GetSchema(context.Background(), 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrFetch)

		var fetchErr *core.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "model not found", fetchErr.Message)
	})

	t.Run("Should fetch schema by model id", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/models/7/parameters", r.URL.Path)
			writeEnvelope(w, 200, "", map[string]any{
				"request_body": []map[string]any{
					{"name": "prompt", "type": "string", "required": true},
				},
			})
		}))

		s, err := client.Models().GetSchema(context.Background(), 7)
		require.NoError(t, err)
		require.Len(t, s.RequestBody, 1)
		assert.Equal(t, "prompt", s.RequestBody[0].Name)
	})
}

func TestTaskService(t *testing.T) {
	t.Run("Should post submission body verbatim", func(t *testing.T) {
		var received map[string]any
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/tasks", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			writeEnvelope(w, 200, "", map[string]any{"id": 31, "status": 1})
		}))

		body := task.SubmitBody{
			Body: task.SubmissionEnvelope{
				Data:  map[string]any{"prompt": "a cat"},
				Model: task.ModelRef{ModelURL: "https://x/flux", ModelName: "Flux"},
			},
			User: task.Identity{CreatorID: 3, CreatorName: "alice"},
		}
		created, err := client.Tasks().Submit(context.Background(), body)
		require.NoError(t, err)
		assert.Equal(t, 31, created.ID)

		raw, err := json.Marshal(received)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"body": {"data": {"prompt": "a cat"}, "model": {"model_url": "https://x/flux", "model_name": "Flux"}},
			"user": {"creatorId": 3, "creatorName": "alice"}
		}`, string(raw))
	})

	t.Run("Should pass list filters as query parameters", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			assert.Equal(t, "2", query.Get("page"))
			assert.Equal(t, "50", query.Get("page_size"))
			assert.Equal(t, "1", query.Get("status"))
			assert.Equal(t, "3", query.Get("creator_id"))
			writeEnvelope(w, 200, "", map[string]any{"total": 1, "items": []map[string]any{{"id": 5}}})
		}))

		page, err := client.Tasks().List(context.Background(), services.TaskFilters{
			Page: 2, PageSize: 50, Status: task.StatusPendingAudit, CreatorID: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, 5, page.Items[0].ID)
	})

	t.Run("Should omit unset filters", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			writeEnvelope(w, 200, "", map[string]any{"total": 0, "items": []any{}})
		}))

		_, err := client.Tasks().List(context.Background(), services.TaskFilters{})
		require.NoError(t, err)
	})

	t.Run("Should use the lifecycle verbs and paths", func(t *testing.T) {
		var gotMethod, gotPath string
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath = r.Method, r.URL.Path
			writeEnvelope(w, 200, "", map[string]any{"id": 9, "status": 2})
		}))
		ctx := context.Background()

		_, err := client.Tasks().Approve(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPatch, gotMethod)
		assert.Equal(t, "/api/v1/tasks/9/approve", gotPath)

		_, err = client.Tasks().Update(ctx, 9, task.UpdateBody{Body: json.RawMessage(`{"a":1}`)})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPut, gotMethod)
		assert.Equal(t, "/api/v1/tasks/9", gotPath)

		_, err = client.Tasks().Cancel(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/api/v1/tasks/9/cancel", gotPath)
	})

	t.Run("Should refresh local state from mutation response", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			// Server decides the next status; the client must not assume it.
			writeEnvelope(w, 200, "", map[string]any{"id": 9, "status": 5})
		}))

		updated, err := client.Tasks().Approve(context.Background(), 9)
		require.NoError(t, err)
		assert.Equal(t, task.StatusFailed, updated.Status)
	})

	t.Run("Should carry server message on HTTP error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": 409, "message": "task already approved"})
		}))

		_, err := client.Tasks().Approve(context.Background(), 9)
		require.Error(t, err)
		var fetchErr *core.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "task already approved", fetchErr.Message)
	})
}
