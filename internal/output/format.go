// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
)

// NoTasks is printed when the list is empty.
const NoTasks = "no tasks found"

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces,
// checkbox, text). Open tasks show "[ ]".
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(t.Completed), normalizeText(t.Text))
}

// FormatTasks formats every task, numbered from 1.
// Prints NoTasks for an empty list unless quiet.
func FormatTasks(w io.Writer, tasks []task.Task, quiet bool) {
	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, NoTasks)
		}
		return
	}
	for i, t := range tasks {
		FormatTask(w, i+1, t)
	}
}

// Checkbox returns "[x]" for completed tasks and "[ ]" otherwise.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText normalizes task text for single-line display.
// Newlines are replaced with spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
