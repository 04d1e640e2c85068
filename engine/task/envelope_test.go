package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/model"
)

func TestNewSubmitBody(t *testing.T) {
	t.Run("Should wrap form data with model metadata and actor identity", func(t *testing.T) {
		selected := model.Summary{ID: 7, Name: "Flux", URL: "https://x/flux", Status: model.StatusOpen}
		body := NewSubmitBody(
			map[string]any{"prompt": "a cat"},
			selected,
			Identity{CreatorID: 3, CreatorName: "alice"},
		)

		raw, err := json.Marshal(body)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"body": {
				"data": {"prompt": "a cat"},
				"model": {"model_url": "https://x/flux", "model_name": "Flux"}
			},
			"user": {"creatorId": 3, "creatorName": "alice"}
		}`, string(raw))
	})
}

func TestIsNested(t *testing.T) {
	t.Run("Should detect nested envelopes by data key", func(t *testing.T) {
		assert.True(t, IsNested(json.RawMessage(`{"data":{"a":1},"model":{}}`)))
		assert.False(t, IsNested(json.RawMessage(`{"a":1}`)))
	})

	t.Run("Should treat flat record with literal data key as nested", func(t *testing.T) {
		// Structural probing cannot distinguish this from a real nested
		// envelope; matches the backend's handling of stored records.
		assert.True(t, IsNested(json.RawMessage(`{"data":"2024-01-01"}`)))
	})
}

func TestPrepareEdit(t *testing.T) {
	t.Run("Should extract inner data from nested envelope", func(t *testing.T) {
		tk := &Task{InputData: json.RawMessage(`{"data":{"a":1},"model":{"model_name":"Flux"}}`)}
		text, err := PrepareEdit(tk)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, text)
		assert.NotContains(t, text, "model_name")
	})

	t.Run("Should serialize flat envelope wholesale", func(t *testing.T) {
		tk := &Task{InputData: json.RawMessage(`{"a":1}`)}
		text, err := PrepareEdit(tk)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, text)
	})

	t.Run("Should indent for editing", func(t *testing.T) {
		tk := &Task{InputData: json.RawMessage(`{"prompt":"a cat"}`)}
		text, err := PrepareEdit(tk)
		require.NoError(t, err)
		assert.Contains(t, text, "\n  \"prompt\"")
	})

	t.Run("Should handle empty envelope", func(t *testing.T) {
		tk := &Task{}
		text, err := PrepareEdit(tk)
		require.NoError(t, err)
		assert.Equal(t, "{}", text)
	})
}

func TestApplyEdit(t *testing.T) {
	t.Run("Should replace only data and preserve siblings byte-for-byte", func(t *testing.T) {
		original := `{"data":{"a":1},"model":{"model_url":"https://x/flux","model_name":"Flux"}}`
		tk := &Task{InputData: json.RawMessage(original)}

		body, err := ApplyEdit(tk, `{"a":2}`)
		require.NoError(t, err)

		assert.JSONEq(t, `{"data":{"a":2},"model":{"model_url":"https://x/flux","model_name":"Flux"}}`,
			string(body.Body))
		// The untouched model object keeps its exact original bytes.
		assert.Contains(t, string(body.Body), `"model":{"model_url":"https://x/flux","model_name":"Flux"}`)
	})

	t.Run("Should replace flat envelope wholesale", func(t *testing.T) {
		tk := &Task{InputData: json.RawMessage(`{"a":1}`)}
		body, err := ApplyEdit(tk, `{"a":2}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":2}`, string(body.Body))
	})

	t.Run("Should fail with validation error on malformed JSON", func(t *testing.T) {
		tk := &Task{InputData: json.RawMessage(`{"a":1}`)}
		_, err := ApplyEdit(tk, `{invalid`)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("Should preserve unknown top-level keys", func(t *testing.T) {
		tk := &Task{InputData: json.RawMessage(`{"data":{"a":1},"model":{},"trace_id":"xyz"}`)}
		body, err := ApplyEdit(tk, `{"a":2}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"a":2},"model":{},"trace_id":"xyz"}`, string(body.Body))
	})

	t.Run("Should serialize update body under body key", func(t *testing.T) {
		tk := &Task{InputData: json.RawMessage(`{"a":1}`)}
		body, err := ApplyEdit(tk, `{"a":2}`)
		require.NoError(t, err)

		raw, err := json.Marshal(body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"body":{"a":2}}`, string(raw))
	})
}
