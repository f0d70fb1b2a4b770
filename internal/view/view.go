// Package view projects the task list into an ordered sequence of
// interactive rows and resolves clicks on those rows.
//
// A View never decides what the list contains. The controller keeps it in
// step with the authoritative task.List through AppendRow, UpdateRow,
// RemoveRow and Reset.
package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"todo/internal/task"
)

// Row layout, in terminal columns:
//
//	> [x] Buy milk  [del]
//	^ ^   ^         ^
//	| |   |         delete control
//	| |   text
//	| checkbox (part of the toggle region)
//	cursor gutter
const (
	gutterWidth   = 2
	checkboxWidth = 4
	gapWidth      = 2

	// DeleteLabel is the delete control drawn at the end of each row.
	DeleteLabel = "[del]"

	ellipsis = "…"
)

// Part identifies which region of a row an event landed on.
type Part int

const (
	// PartNone means the event missed every interactive region.
	PartNone Part = iota
	// PartText is the checkbox and text: the completion toggle.
	PartText
	// PartDelete is the delete control.
	PartDelete
)

func (p Part) String() string {
	switch p {
	case PartText:
		return "text"
	case PartDelete:
		return "delete"
	default:
		return "none"
	}
}

// Row is the rendered form of one task.
type Row struct {
	TaskID    task.ID
	Text      string
	Completed bool
}

// Target is the resolved destination of a click on the list.
type Target struct {
	TaskID task.ID
	Part   Part
}

// RenderRow produces the row for a task. It has no side effects.
func RenderRow(t task.Task) Row {
	return Row{
		TaskID:    t.ID,
		Text:      displayText(t.Text),
		Completed: t.Completed,
	}
}

// View is the ordered list of rendered rows.
type View struct {
	rows  []Row
	theme Theme
	width int
}

// New creates an empty View.
func New(theme Theme) *View {
	return &View{theme: theme}
}

// Theme returns the view's theme.
func (v *View) Theme() Theme {
	return v.theme
}

// SetWidth sets the available width in columns. Zero means unlimited.
// Rendering and hit-testing both use it.
func (v *View) SetWidth(width int) {
	if width < 0 {
		width = 0
	}
	v.width = width
}

// Reset removes all rows.
func (v *View) Reset() {
	v.rows = nil
}

// AppendRow adds a row at the end.
func (v *View) AppendRow(row Row) {
	v.rows = append(v.rows, row)
}

// UpdateRow replaces the row with the same task ID.
// Returns false if no such row exists.
func (v *View) UpdateRow(row Row) bool {
	i := v.index(row.TaskID)
	if i < 0 {
		return false
	}
	v.rows[i] = row
	return true
}

// RemoveRow removes exactly one row, the one for the given task.
// Returns false if no such row exists.
func (v *View) RemoveRow(id task.ID) bool {
	i := v.index(id)
	if i < 0 {
		return false
	}
	v.rows = append(v.rows[:i], v.rows[i+1:]...)
	return true
}

// Len returns the number of rows.
func (v *View) Len() int {
	return len(v.rows)
}

// Row returns the row at a 0-based index.
func (v *View) Row(index int) (Row, bool) {
	if index < 0 || index >= len(v.rows) {
		return Row{}, false
	}
	return v.rows[index], true
}

// Rows returns a copy of the rows in order.
func (v *View) Rows() []Row {
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// Locate resolves a click at (index, column) to a target. index is the
// 0-based row, column the 0-based terminal column. Clicks outside any row
// or between regions resolve to PartNone.
func (v *View) Locate(index, column int) Target {
	row, ok := v.Row(index)
	if !ok {
		return Target{Part: PartNone}
	}
	l := v.layout(row)
	switch {
	case column >= gutterWidth && column < l.textEnd:
		return Target{TaskID: row.TaskID, Part: PartText}
	case column >= l.deleteStart && column < l.deleteStart+ansi.StringWidth(DeleteLabel):
		return Target{TaskID: row.TaskID, Part: PartDelete}
	default:
		return Target{TaskID: row.TaskID, Part: PartNone}
	}
}

// Render draws all rows, one per line. cursor is the 0-based selected row,
// or -1 for none; the cursor gutter is only drawn when focused.
func (v *View) Render(cursor int, focused bool) string {
	var b strings.Builder
	for i, row := range v.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(v.renderLine(row, i == cursor, focused))
	}
	return b.String()
}

func (v *View) renderLine(row Row, selected, focused bool) string {
	l := v.layout(row)

	gutter := "  "
	if selected && focused {
		gutter = "> "
	}
	box := "[ ] "
	if row.Completed {
		box = "[x] "
	}

	return gutter +
		v.theme.textStyle(row.Completed, selected && focused).Render(box+l.text) +
		strings.Repeat(" ", gapWidth) +
		v.theme.deleteStyle(selected && focused).Render(DeleteLabel)
}

type rowLayout struct {
	text        string
	textEnd     int
	deleteStart int
}

func (v *View) layout(row Row) rowLayout {
	text := row.Text
	if v.width > 0 {
		avail := v.width - gutterWidth - checkboxWidth - gapWidth - ansi.StringWidth(DeleteLabel)
		if avail < 1 {
			avail = 1
		}
		text = ansi.Truncate(text, avail, ellipsis)
	}
	textEnd := gutterWidth + checkboxWidth + ansi.StringWidth(text)
	return rowLayout{
		text:        text,
		textEnd:     textEnd,
		deleteStart: textEnd + gapWidth,
	}
}

func (v *View) index(id task.ID) int {
	for i, r := range v.rows {
		if r.TaskID == id {
			return i
		}
	}
	return -1
}

// displayText flattens line breaks so each task occupies one line.
func displayText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
