package tui

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display on the
// status line.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// LogHandler is a slog.Handler that routes log records into a bubbletea
// program as messages, so nothing is written to stderr while the UI owns
// the terminal. Records below the configured level are dropped, as are
// records arriving before SetProgram is called.
//
// Handlers derived via WithAttrs/WithGroup share the program pointer.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewLogHandler creates a handler that delivers records at or above level.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (h *LogHandler) SetProgram(program *tea.Program) {
	h.program.Store(program)
}

// Enabled reports whether the handler is interested in records at level.
func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as "message (key=value, ...)" and sends it to
// the program.
func (h *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := h.program.Load()
	if program == nil {
		return nil
	}

	msg := logRecordMsg{Summary: h.summary(record), Level: record.Level}

	// Records are mostly emitted from inside Update, and Send blocks until
	// the event loop receives.
	go program.Send(msg)
	return nil
}

func (h *LogHandler) summary(record slog.Record) string {
	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}

	var parts []string
	for _, attr := range h.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, prefix+attr.Key+"="+attr.Value.String())
		return true
	})

	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs returns a handler with attrs appended.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{
		level:   h.level,
		program: h.program,
		attrs:   append(sliceClone(h.attrs), attrs...),
		groups:  sliceClone(h.groups),
	}
}

// WithGroup returns a handler with name appended to the group path.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{
		level:   h.level,
		program: h.program,
		attrs:   sliceClone(h.attrs),
		groups:  append(sliceClone(h.groups), name),
	}
}

func sliceClone[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
