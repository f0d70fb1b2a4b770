package output

import (
	"bytes"
	"testing"

	"todo/internal/task"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task task.Task
		want string
	}{
		{"open", 1, task.Task{Text: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"done", 12, task.Task{Text: "Walk dog", Completed: true}, "  12  [x] Walk dog\n"},
		{"newlines", 3, task.Task{Text: "two\r\nlines"}, "   3  [ ] two  lines\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatTasks_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTasks(&buf, nil, false)
	if buf.String() != "no tasks found\n" {
		t.Errorf("expected no tasks message, got %q", buf.String())
	}

	buf.Reset()
	FormatTasks(&buf, nil, true)
	if buf.Len() != 0 {
		t.Errorf("expected empty output in quiet mode, got %q", buf.String())
	}
}
