// Package task defines the task entity and the authoritative ordered task list.
package task

import (
	"errors"
	"strings"
)

// ID identifies a task for the lifetime of a session.
// IDs are never persisted; they are reassigned on every hydration.
type ID uint64

// Task represents a single to-do entry.
type Task struct {
	ID        ID
	Text      string
	Completed bool
}

// Record is the persisted form of a task.
type Record struct {
	Text      string `json:"text" cbor:"text"`
	Completed bool   `json:"completed" cbor:"completed"`
}

// Record returns the persisted form of t.
func (t Task) Record() Record {
	return Record{Text: t.Text, Completed: t.Completed}
}

var (
	// ErrEmptyText is returned when task text is empty or whitespace-only.
	ErrEmptyText = errors.New("task text required")

	// ErrListFull is returned when the configured maximum list size is reached.
	ErrListFull = errors.New("task list is full")

	// ErrNotFound is returned when no task has the given ID.
	ErrNotFound = errors.New("task not found")
)

// IsValidation reports whether err is a user-input validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrListFull)
}

// NormalizeText trims surrounding whitespace and rejects empty text.
func NormalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}
