// Package logging builds the slog loggers used by commands and the UI.
package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// New creates a structured logger writing to w.
// When w is a terminal, uses slog.TextHandler for human-readable output.
// Otherwise (pipes, CI, redirected stderr) uses slog.JSONHandler.
func New(w io.Writer, level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
