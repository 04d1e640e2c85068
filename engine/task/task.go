package task

import (
	"encoding/json"
	"time"
)

// Status is the server-owned lifecycle state of a task. The client never
// transitions status locally; it invokes the matching action call and
// refreshes from the response.
type Status int

const (
	StatusPendingAudit Status = iota + 1
	StatusPendingExecution
	StatusExecuting
	StatusCompleted
	StatusFailed
	StatusCancelled
)

// Severity groups statuses for display styling.
type Severity string

const (
	SeverityWarning    Severity = "warning"
	SeverityProcessing Severity = "processing"
	SeveritySuccess    Severity = "success"
	SeverityError      Severity = "error"
	SeverityDefault    Severity = "default"
)

func (s Status) Label() string {
	switch s {
	case StatusPendingAudit:
		return "Pending Audit"
	case StatusPendingExecution:
		return "Pending Execution"
	case StatusExecuting:
		return "Executing"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (s Status) Severity() Severity {
	switch s {
	case StatusPendingAudit:
		return SeverityWarning
	case StatusPendingExecution, StatusExecuting:
		return SeverityProcessing
	case StatusCompleted:
		return SeveritySuccess
	case StatusFailed:
		return SeverityError
	case StatusCancelled:
		return SeverityDefault
	default:
		return SeverityDefault
	}
}

// Terminal reports whether the task can no longer change on its own.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Task is one queued/executing/completed invocation of a model. The local
// copy is always replaced by the server's response or re-fetched, never
// optimistically merged beyond the edit-envelope construction in
// envelope.go.
type Task struct {
	ID          int             `json:"id"`
	Status      Status          `json:"status"`
	InputData   json.RawMessage `json:"input_data"`
	CreatorID   int             `json:"creator_id"`
	CreatorName string          `json:"creator_name"`
	ResultURL   string          `json:"result_url,omitempty"`
	RetryCount  int             `json:"retry_count"`
	MaxRetries  int             `json:"max_retries"`
	ErrorLog    string          `json:"error_log,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Action is a client-side operation offered against a task.
type Action string

const (
	ActionApprove Action = "approve"
	ActionEdit    Action = "edit"
	ActionCancel  Action = "cancel"
	ActionView    Action = "view"
)

// PermittedActions is the sole client-side authorization gate: it decides
// which actions to offer for a task's current status. The server remains
// the authority of record and re-validates every call.
func PermittedActions(t *Task) map[Action]bool {
	actions := map[Action]bool{ActionView: true}
	if t.Status == StatusPendingAudit {
		actions[ActionApprove] = true
		actions[ActionEdit] = true
	}
	if !t.Status.Terminal() {
		actions[ActionCancel] = true
	}
	return actions
}
