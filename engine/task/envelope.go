package task

import (
	"encoding/json"

	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/model"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Two envelope shapes coexist in stored tasks: a flat key→value record, and
// a nested {data, model} wrapper produced by the wizard. Detection is
// structural — presence of a top-level "data" key — because the backend's
// records carry no version tag. A flat record that legitimately contains a
// key named "data" is therefore treated as nested; that ambiguity is part
// of the stored-data contract and is preserved here.

// ModelRef is the model-selection metadata carried alongside the data in a
// nested envelope.
type ModelRef struct {
	ModelURL  string `json:"model_url"`
	ModelName string `json:"model_name"`
}

// SubmissionEnvelope is the nested shape the wizard submits.
type SubmissionEnvelope struct {
	Data  map[string]any `json:"data"`
	Model ModelRef       `json:"model"`
}

// Identity is the authenticated actor attached to a submission.
type Identity struct {
	CreatorID   int    `json:"creatorId"`
	CreatorName string `json:"creatorName"`
}

// SubmitBody is the wire shape of a task-create call.
type SubmitBody struct {
	Body SubmissionEnvelope `json:"body"`
	User Identity           `json:"user"`
}

// UpdateBody is the wire shape of a task-update call.
type UpdateBody struct {
	Body json.RawMessage `json:"body"`
}

// NewSubmitBody assembles the create payload from the wizard's collected
// record, the selected model, and the acting user.
func NewSubmitBody(data map[string]any, selected model.Summary, actor Identity) SubmitBody {
	return SubmitBody{
		Body: SubmissionEnvelope{
			Data:  data,
			Model: ModelRef{ModelURL: selected.URL, ModelName: selected.Name},
		},
		User: actor,
	}
}

// IsNested reports whether a stored envelope carries the {data, model}
// wrapper.
func IsNested(envelope json.RawMessage) bool {
	return gjson.GetBytes(envelope, "data").Exists()
}

// InnerData returns the editable flat record of an envelope: the "data"
// member when nested, otherwise the envelope itself.
func InnerData(envelope json.RawMessage) json.RawMessage {
	if inner := gjson.GetBytes(envelope, "data"); inner.Exists() {
		return json.RawMessage(inner.Raw)
	}
	return envelope
}

// PrepareEdit serializes the editable record of a task to indented JSON
// text for the edit form.
func PrepareEdit(t *Task) (string, error) {
	inner := InnerData(t.InputData)
	if len(inner) == 0 {
		return "{}", nil
	}
	var value any
	if err := json.Unmarshal(inner, &value); err != nil {
		return "", core.NewValidationError("input_data", "stored task parameters are not valid JSON")
	}
	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}

// ApplyEdit merges edited JSON text back into a task's stored envelope and
// returns the update payload. Nested envelopes get only their "data" member
// replaced; every sibling key is preserved byte-for-byte. Flat envelopes
// are replaced wholesale. Malformed text fails with a validation error
// before any network call happens.
func ApplyEdit(t *Task, editedText string) (UpdateBody, error) {
	if !json.Valid([]byte(editedText)) {
		return UpdateBody{}, core.NewValidationError("input_data", "invalid JSON")
	}

	if IsNested(t.InputData) {
		merged, err := sjson.SetRawBytes(t.InputData, "data", []byte(editedText))
		if err != nil {
			return UpdateBody{}, core.NewValidationError("input_data", "cannot merge edited parameters")
		}
		return UpdateBody{Body: merged}, nil
	}
	return UpdateBody{Body: json.RawMessage(editedText)}, nil
}
