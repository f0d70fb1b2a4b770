package task

import (
	"errors"
	"testing"
)

func TestAdd_TrimsAndAppends(t *testing.T) {
	l := NewList(0)

	got, err := l.Add("  Buy milk  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "Buy milk" {
		t.Errorf("expected text %q, got %q", "Buy milk", got.Text)
	}
	if got.Completed {
		t.Error("expected new task to be open")
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 task, got %d", l.Len())
	}
}

func TestAdd_RejectsBlankText(t *testing.T) {
	l := NewList(0)

	for _, text := range []string{"", " ", "\t\n  "} {
		if _, err := l.Add(text); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Add(%q): expected ErrEmptyText, got %v", text, err)
		}
	}
	if l.Len() != 0 {
		t.Errorf("expected empty list, got %d tasks", l.Len())
	}
}

func TestAdd_Limit(t *testing.T) {
	l := NewList(2)
	l.Add("one")
	l.Add("two")

	_, err := l.Add("three")
	if !errors.Is(err, ErrListFull) {
		t.Fatalf("expected ErrListFull, got %v", err)
	}
	if !IsValidation(err) {
		t.Error("expected ErrListFull to be a validation error")
	}
	if l.Len() != 2 {
		t.Errorf("expected 2 tasks, got %d", l.Len())
	}
}

func TestIDsAreStableAcrossRemoval(t *testing.T) {
	l := NewList(0)
	a, _ := l.Add("a")
	b, _ := l.Add("b")
	c, _ := l.Add("c")

	if _, err := l.Remove(a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := l.Get(c.ID)
	if !ok || got.Text != "c" {
		t.Errorf("expected task c to keep its ID, got %+v ok=%v", got, ok)
	}
	first, _ := l.At(1)
	if first.ID != b.ID {
		t.Errorf("expected b at position 1, got %+v", first)
	}
}

func TestToggle_SelfInverse(t *testing.T) {
	l := NewList(0)
	task, _ := l.Add("Walk dog")

	once, err := l.Toggle(task.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !once.Completed {
		t.Error("expected completed after one toggle")
	}
	twice, _ := l.Toggle(task.ID)
	if twice.Completed {
		t.Error("expected open after two toggles")
	}
}

func TestToggleAndRemove_UnknownID(t *testing.T) {
	l := NewList(0)

	if _, err := l.Toggle(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Toggle: expected ErrNotFound, got %v", err)
	}
	if _, err := l.Remove(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove: expected ErrNotFound, got %v", err)
	}
}

func TestRemove_KeepsOrder(t *testing.T) {
	l := NewList(0)
	l.Add("a")
	b, _ := l.Add("b")
	l.Add("c")

	l.Remove(b.ID)

	recs := l.Records()
	if len(recs) != 2 || recs[0].Text != "a" || recs[1].Text != "c" {
		t.Errorf("expected [a c], got %+v", recs)
	}
}

func TestReplace_IsNotAMerge(t *testing.T) {
	l := NewList(0)
	records := []Record{{Text: "x"}, {Text: "y", Completed: true}}

	l.Replace(records)
	l.Replace(records)

	if l.Len() != 2 {
		t.Fatalf("expected 2 tasks after hydrating twice, got %d", l.Len())
	}
	got := l.Records()
	if got[0] != records[0] || got[1] != records[1] {
		t.Errorf("expected %+v, got %+v", records, got)
	}
}

func TestReplace_SkipsBlankRecords(t *testing.T) {
	l := NewList(0)

	skipped := l.Replace([]Record{{Text: "ok"}, {Text: "   "}, {Text: ""}})

	if skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", skipped)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 task, got %d", l.Len())
	}
}

func TestReplace_IgnoresLimit(t *testing.T) {
	l := NewList(1)

	l.Replace([]Record{{Text: "a"}, {Text: "b"}})

	if l.Len() != 2 {
		t.Errorf("expected stored tasks to load past the limit, got %d", l.Len())
	}
}

func TestRecords_EmptyIsNotNil(t *testing.T) {
	l := NewList(0)
	if l.Records() == nil {
		t.Error("expected non-nil empty records")
	}
}

func TestAt_OutOfRange(t *testing.T) {
	l := NewList(0)
	l.Add("a")

	for _, pos := range []int{0, 2, -1} {
		if _, ok := l.At(pos); ok {
			t.Errorf("At(%d): expected not found", pos)
		}
	}
}
