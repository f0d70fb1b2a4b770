package filekv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetItem_MissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	_, ok, err := s.GetItem(context.Background(), "tasks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected key to be absent")
	}
}

func TestSetThenGet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", FileName)
	s, _ := Open(path)
	ctx := context.Background()

	value := `[{"text":"Buy milk","completed":false}]`
	if err := s.SetItem(ctx, "tasks", value); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := s.SetItem(ctx, "other", "x"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	// A fresh Store sees the persisted value.
	reopened, _ := Open(path)
	got, ok, err := reopened.GetItem(ctx, "tasks")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if !ok || got != value {
		t.Errorf("expected %q, got %q ok=%v", value, got, ok)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestSetItem_Overwrites(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), FileName))
	ctx := context.Background()

	s.SetItem(ctx, "tasks", "[1]")
	s.SetItem(ctx, "tasks", "[]")

	got, _, _ := s.GetItem(ctx, "tasks")
	if got != "[]" {
		t.Errorf("expected overwritten value, got %q", got)
	}
}

func TestSetItem_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, _ := Open(filepath.Join(dir, FileName))

	if err := s.SetItem(context.Background(), "tasks", "[]"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp.") {
			t.Errorf("unexpected temp file left behind: %s", e.Name())
		}
	}
}

func TestGetItem_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[not an object"), 0600); err != nil {
		t.Fatal(err)
	}
	s, _ := Open(path)

	_, _, err := s.GetItem(context.Background(), "tasks")
	if err == nil {
		t.Fatal("expected error for corrupt storage file")
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestCancelledContext(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), FileName))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.SetItem(ctx, "tasks", "[]"); err == nil {
		t.Error("expected error on cancelled context")
	}
}
