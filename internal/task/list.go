package task

import "fmt"

// List is the ordered task list. Insertion order is display order and
// persistence order.
//
// List is not safe for concurrent use; callers confine it to one goroutine.
type List struct {
	tasks  []Task
	nextID ID
	limit  int
}

// NewList creates an empty list. A limit of zero or less means unlimited.
func NewList(limit int) *List {
	if limit < 0 {
		limit = 0
	}
	return &List{nextID: 1, limit: limit}
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Limit returns the maximum list size, or 0 if unlimited.
func (l *List) Limit() int {
	return l.limit
}

// Add appends a new open task.
// The text is trimmed; empty text returns ErrEmptyText.
func (l *List) Add(text string) (Task, error) {
	text, err := NormalizeText(text)
	if err != nil {
		return Task{}, err
	}
	if l.limit > 0 && len(l.tasks) >= l.limit {
		return Task{}, fmt.Errorf("%w (max %d)", ErrListFull, l.limit)
	}
	t := Task{ID: l.allocID(), Text: text}
	l.tasks = append(l.tasks, t)
	return t, nil
}

// Toggle flips the completion state of the task with the given ID.
func (l *List) Toggle(id ID) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return l.tasks[i], nil
}

// Remove deletes exactly one task and returns it.
func (l *List) Remove(id ID) (Task, error) {
	i := l.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	t := l.tasks[i]
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return t, nil
}

// Replace discards the current contents and loads records in order,
// assigning fresh IDs. Records with blank text are skipped; the number
// skipped is returned. The size limit is not applied to loaded records.
func (l *List) Replace(records []Record) (skipped int) {
	l.tasks = make([]Task, 0, len(records))
	for _, r := range records {
		text, err := NormalizeText(r.Text)
		if err != nil {
			skipped++
			continue
		}
		l.tasks = append(l.tasks, Task{ID: l.allocID(), Text: text, Completed: r.Completed})
	}
	return skipped
}

// Get returns the task with the given ID.
func (l *List) Get(id ID) (Task, bool) {
	i := l.index(id)
	if i < 0 {
		return Task{}, false
	}
	return l.tasks[i], true
}

// At returns the task at a 1-based position.
func (l *List) At(pos int) (Task, bool) {
	if pos < 1 || pos > len(l.tasks) {
		return Task{}, false
	}
	return l.tasks[pos-1], true
}

// Tasks returns a copy of the tasks in order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Records returns the persisted form of the list. Never nil.
func (l *List) Records() []Record {
	out := make([]Record, 0, len(l.tasks))
	for _, t := range l.tasks {
		out = append(out, t.Record())
	}
	return out
}

func (l *List) index(id ID) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) allocID() ID {
	id := l.nextID
	l.nextID++
	return id
}
