package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an id no longer exists, typically
	// after a concurrent delete. Callers should refresh their view.
	ErrNotFound = errors.New("storage: not found")

	// ErrNoReminderTime is returned by Snooze when the task has no
	// parseable reminder time to advance.
	ErrNoReminderTime = errors.New("storage: task has no parseable reminder time")
)

// ValidationError rejects creation input before anything is written.
// Recoverable: re-submit corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("storage: invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failure of the backing medium itself. It fails
// the call in progress and is propagated unmodified; malformed rows are
// not storage errors, they are repaired on load.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
