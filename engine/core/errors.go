package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure kinds the client distinguishes.
// Callers branch with errors.Is against these.
var (
	// ErrFetch covers transport failures, non-2xx responses, and
	// business-status rejections from the backend.
	ErrFetch = errors.New("fetch error")

	// ErrValidation covers locally detected bad input. Validation
	// failures never reach the server.
	ErrValidation = errors.New("validation error")

	// ErrState covers actions the server rejected because the task's
	// status no longer permits them. Detectable only after the round
	// trip since the client's view may be stale.
	ErrState = errors.New("state error")
)

// FetchError is a failed read or write against the backend. Message holds
// the server-provided message when one exists; callers surface it verbatim.
type FetchError struct {
	Operation string
	Message   string
	Status    int
	Cause     error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s failed (status %d)", e.Operation, e.Status)
}

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

func (e *FetchError) Unwrap() error { return e.Cause }

// ServerMessage returns the backend's message, or a generic fallback when
// the backend sent none.
func (e *FetchError) ServerMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// ValidationError is malformed local input: an unparseable JSON field or a
// missing required value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StateError is a server rejection of an action whose precondition status
// no longer holds.
type StateError struct {
	TaskID int
	Action string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("task %d no longer permits %s", e.TaskID, e.Action)
}

func (e *StateError) Is(target error) bool { return target == ErrState }

// NewFetchError wraps a transport failure.
func NewFetchError(operation string, cause error) error {
	return &FetchError{Operation: operation, Cause: cause}
}

// NewValidationError reports bad local input for a named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
