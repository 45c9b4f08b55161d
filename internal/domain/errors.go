package domain

import "fmt"

// ValidationError reports malformed or missing required input. It is
// surfaced to the caller as a rejected request and never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an address that fails to resolve against the
// current tree, typically a stale client-side path or an already-deleted
// node. The caller is expected to reload current state and retry.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.What
}

// NotFoundf builds a NotFoundError from a format string.
func NotFoundf(format string, args ...interface{}) error {
	return &NotFoundError{What: fmt.Sprintf(format, args...)}
}

// ConflictError reports a duplicate id among siblings or a duplicate url
// within one category. Surfaced directly, no automatic resolution.
type ConflictError struct {
	What string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.What
}

// Conflictf builds a ConflictError from a format string.
func Conflictf(format string, args ...interface{}) error {
	return &ConflictError{What: fmt.Sprintf(format, args...)}
}

// StorageUnavailableError reports that the persistence backend is not
// reachable. Fatal for the current operation; callers must not fall back
// to unpersisted in-memory state when a write was requested.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// StorageUnavailable wraps a backend error with the failing operation.
func StorageUnavailable(op string, err error) error {
	return &StorageUnavailableError{Op: op, Err: err}
}
