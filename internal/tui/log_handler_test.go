package tui

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestLogHandler_Enabled(t *testing.T) {
	handler := NewLogHandler(slog.LevelWarn)

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be filtered")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to pass")
	}
}

func TestLogHandler_Summary(t *testing.T) {
	handler := NewLogHandler(slog.LevelInfo).
		WithAttrs([]slog.Attr{slog.String("key", "tasks")}).(*LogHandler)

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "could not save tasks", 0)
	record.AddAttrs(slog.String("error", "quota exceeded"))

	want := "could not save tasks (key=tasks, error=quota exceeded)"
	if got := handler.summary(record); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogHandler_NoProgramDrops(t *testing.T) {
	handler := NewLogHandler(slog.LevelDebug)
	logger := slog.New(handler)

	// Must not panic or block without a program.
	logger.Warn("dropped")
}
