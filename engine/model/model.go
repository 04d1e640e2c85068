package model

// Status is the publication state of a registered model. Only open models
// are selectable in the creation wizard.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

// Summary is an immutable catalog entry for one backend-registered model.
// It is fetched once per wizard session and discarded when the wizard
// closes.
type Summary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Status Status `json:"status"`
}

// Selectable reports whether the model may be chosen for a new task.
func (s Summary) Selectable() bool {
	return s.Status == StatusOpen
}

// FilterOpen returns the subset of models with open status, preserving
// order. An empty result means "no selectable models", not an error.
func FilterOpen(models []Summary) []Summary {
	open := make([]Summary, 0, len(models))
	for _, m := range models {
		if m.Selectable() {
			open = append(open, m)
		}
	}
	return open
}
