package task

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// placeholder rendered when a conventional key is absent from the envelope.
const placeholder = "-"

const promptDisplayLimit = 80

// Row is the read-only list projection of one task. Recomputed from the
// latest fetched page on every request; never updated incrementally.
type Row struct {
	ID              int
	Creator         string
	PreviewImageURL string
	Prompt          string
	StatusLabel     string
	Severity        Severity
	Retries         string
	CreatedAt       string
	UpdatedAt       string
}

// ToRow derives the display row for a task. Preview image and prompt come
// from the conventional "image" and "prompt" keys of the inner record;
// absence renders as a dash, never an error.
func ToRow(t *Task) Row {
	inner := InnerData(t.InputData)
	return Row{
		ID:              t.ID,
		Creator:         fmt.Sprintf("%s (ID: %d)", t.CreatorName, t.CreatorID),
		PreviewImageURL: stringKey(inner, "image"),
		Prompt:          truncate(stringKey(inner, "prompt"), promptDisplayLimit),
		StatusLabel:     t.Status.Label(),
		Severity:        t.Status.Severity(),
		Retries:         fmt.Sprintf("%d / %d", t.RetryCount, t.MaxRetries),
		CreatedAt:       formatTime(t.CreatedAt),
		UpdatedAt:       formatTime(t.UpdatedAt),
	}
}

// ToRows projects a fetched page of tasks.
func ToRows(tasks []Task) []Row {
	rows := make([]Row, 0, len(tasks))
	for i := range tasks {
		rows = append(rows, ToRow(&tasks[i]))
	}
	return rows
}

func stringKey(record []byte, key string) string {
	value := gjson.GetBytes(record, key)
	if !value.Exists() || value.String() == "" {
		return placeholder
	}
	return value.String()
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return placeholder
	}
	return ts.Format("2006-01-02 15:04:05")
}

func truncate(s string, limit int) string {
	if s == placeholder {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
