// Package storage persists the task list in a key/value backend.
//
// The persisted layout is a single key, TasksKey, holding a JSON array of
// {"text": string, "completed": bool} records in display order. The whole
// value is overwritten on every write.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"todo/internal/task"
)

const (
	// TasksKey is the key holding the serialized task list.
	TasksKey = "tasks"

	// QuarantineKey receives an undecodable TasksKey value before it is
	// overwritten.
	QuarantineKey = "tasks.corrupt"
)

// Backend is a string key/value store with localStorage semantics.
// All backends under internal/backend implement it.
type Backend interface {
	// GetItem returns the value for key. ok is false if the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// Close releases backend resources.
	Close() error
}

// Error is a failure reading from or writing to the backend.
type Error struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// MalformedError reports a stored value that does not decode as a task list.
type MalformedError struct {
	Raw string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("stored tasks are malformed: %v", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is a backend failure.
func IsStorageError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

// IsMalformed reports whether err is a decode failure of stored data.
func IsMalformed(err error) bool {
	var me *MalformedError
	return errors.As(err, &me)
}

// Tasks reads and writes the task list through a Backend.
type Tasks struct {
	backend Backend
	logger  *slog.Logger
}

// NewTasks creates a task store over backend. A nil logger discards output.
func NewTasks(backend Backend, logger *slog.Logger) *Tasks {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tasks{backend: backend, logger: logger}
}

// SetLogger replaces the logger. A nil logger discards output.
func (t *Tasks) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t.logger = logger
}

// Hydrate reads the persisted task list.
// An absent key yields an empty list and no error.
func (t *Tasks) Hydrate(ctx context.Context) ([]task.Record, error) {
	raw, ok, err := t.backend.GetItem(ctx, TasksKey)
	if err != nil {
		return nil, &Error{Op: "read", Key: TasksKey, Err: err}
	}
	if !ok {
		t.logger.Debug("no stored tasks", "key", TasksKey)
		return []task.Record{}, nil
	}

	records, err := Decode([]byte(raw))
	if err != nil {
		return nil, &MalformedError{Raw: raw, Err: err}
	}
	t.logger.Debug("hydrated tasks", "key", TasksKey, "count", len(records))
	return records, nil
}

// Persist serializes records and overwrites the stored value.
func (t *Tasks) Persist(ctx context.Context, records []task.Record) error {
	data, err := Encode(records)
	if err != nil {
		return &Error{Op: "write", Key: TasksKey, Err: err}
	}
	if err := t.backend.SetItem(ctx, TasksKey, string(data)); err != nil {
		return &Error{Op: "write", Key: TasksKey, Err: err}
	}
	t.logger.Debug("persisted tasks", "key", TasksKey, "count", len(records), "bytes", len(data))
	return nil
}

// Raw returns the stored value as-is.
func (t *Tasks) Raw(ctx context.Context) (string, bool, error) {
	raw, ok, err := t.backend.GetItem(ctx, TasksKey)
	if err != nil {
		return "", false, &Error{Op: "read", Key: TasksKey, Err: err}
	}
	return raw, ok, nil
}

// Quarantine copies an undecodable value aside so the next Persist does
// not destroy it.
func (t *Tasks) Quarantine(ctx context.Context, raw string) error {
	if err := t.backend.SetItem(ctx, QuarantineKey, raw); err != nil {
		return &Error{Op: "write", Key: QuarantineKey, Err: err}
	}
	t.logger.Warn("quarantined malformed tasks", "key", QuarantineKey, "bytes", len(raw))
	return nil
}
