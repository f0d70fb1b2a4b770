// Package controller binds user intents to the task list, its rendered
// view and its persisted form, and keeps the three consistent.
//
// After every mutating call returns, the view rows and the last successful
// write both equal the list. When a write fails the session continues in
// memory and the failure is reported as a warning.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/view"
)

// Persister reads and writes the persisted task list.
// *storage.Tasks implements it.
type Persister interface {
	Hydrate(ctx context.Context) ([]task.Record, error)
	Persist(ctx context.Context, records []task.Record) error
	Quarantine(ctx context.Context, raw string) error
}

// Action names what a handler did.
type Action int

const (
	// ActionNone means nothing changed.
	ActionNone Action = iota
	ActionLoaded
	ActionAdded
	ActionToggled
	ActionDeleted
	// ActionRejected means the input failed validation.
	ActionRejected
)

func (a Action) String() string {
	switch a {
	case ActionLoaded:
		return "loaded"
	case ActionAdded:
		return "added"
	case ActionToggled:
		return "toggled"
	case ActionDeleted:
		return "deleted"
	case ActionRejected:
		return "rejected"
	default:
		return "none"
	}
}

// Result is the outcome of one handled intent. It replaces a blocking
// alert: callers render Err and Warning inline.
type Result struct {
	Action Action

	// Task is the task acted on, if any.
	Task task.Task

	// Err is a validation or lookup error. The list is unchanged.
	Err error

	// Warning is a storage or malformed-data problem. The list change,
	// if any, was applied in memory.
	Warning error
}

// OK reports whether the intent was applied without error or warning.
func (r Result) OK() bool {
	return r.Err == nil && r.Warning == nil
}

// Option configures a Controller.
type Option func(*Controller)

// WithMaxTasks caps the list size. Zero or less means unlimited.
func WithMaxTasks(n int) Option {
	return func(c *Controller) {
		c.list = task.NewList(n)
	}
}

// Controller owns the authoritative task list.
// It is not safe for concurrent use.
type Controller struct {
	list     *task.List
	view     *view.View
	store    Persister
	logger   *slog.Logger
	degraded bool
}

// New creates a Controller. A nil logger discards output.
func New(store Persister, v *view.View, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		list:   task.NewList(0),
		view:   v,
		store:  store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLogger replaces the logger, e.g. to route records into a UI.
func (c *Controller) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c.logger = logger
}

// View returns the rendered view.
func (c *Controller) View() *view.View {
	return c.view
}

// Tasks returns the tasks in display order.
func (c *Controller) Tasks() []task.Task {
	return c.list.Tasks()
}

// Records returns the list in persisted form.
func (c *Controller) Records() []task.Record {
	return c.list.Records()
}

// At returns the task at a 1-based position.
func (c *Controller) At(pos int) (task.Task, bool) {
	return c.list.At(pos)
}

// Degraded reports whether the last storage operation failed, meaning the
// in-memory list may be ahead of what is persisted.
func (c *Controller) Degraded() bool {
	return c.degraded
}

// Load hydrates the list from storage and rebuilds the view.
// It replaces the current contents, so calling it twice does not duplicate
// rows. It never writes the task list back.
func (c *Controller) Load(ctx context.Context) Result {
	records, err := c.store.Hydrate(ctx)
	var warning error
	if err != nil {
		var malformed *storage.MalformedError
		switch {
		case errors.As(err, &malformed):
			c.logger.Warn("stored tasks are malformed, starting empty", "error", malformed.Err)
			warning = err
			if qerr := c.store.Quarantine(ctx, malformed.Raw); qerr != nil {
				c.logger.Warn("could not quarantine malformed tasks", "error", qerr)
				warning = errors.Join(err, qerr)
			}
		default:
			c.logger.Warn("storage unavailable, continuing in memory", "error", err)
			c.degraded = true
			warning = err
		}
		records = nil
	}

	if skipped := c.list.Replace(records); skipped > 0 {
		c.logger.Warn("skipped stored tasks with empty text", "count", skipped)
	}
	c.view.Reset()
	for _, t := range c.list.Tasks() {
		c.view.AppendRow(view.RenderRow(t))
	}

	c.logger.Debug("tasks loaded", "count", c.list.Len())
	return Result{Action: ActionLoaded, Warning: warning}
}

// Submit creates a task from user text. Blank text is rejected with no
// list change and no write.
func (c *Controller) Submit(ctx context.Context, text string) Result {
	t, err := c.list.Add(text)
	if err != nil {
		return Result{Action: ActionRejected, Err: err}
	}
	c.view.AppendRow(view.RenderRow(t))
	c.logger.Debug("task added", "id", t.ID)
	return Result{Action: ActionAdded, Task: t, Warning: c.persist(ctx)}
}

// Click handles a click anywhere in the list, dispatching on the part of
// the row that was hit.
func (c *Controller) Click(ctx context.Context, target view.Target) Result {
	switch target.Part {
	case view.PartDelete:
		return c.Delete(ctx, target.TaskID)
	case view.PartText:
		return c.Toggle(ctx, target.TaskID)
	default:
		return Result{Action: ActionNone}
	}
}

// Toggle flips a task's completion state.
func (c *Controller) Toggle(ctx context.Context, id task.ID) Result {
	t, err := c.list.Toggle(id)
	if err != nil {
		return Result{Action: ActionNone, Err: err}
	}
	if !c.view.UpdateRow(view.RenderRow(t)) {
		c.resync()
	}
	c.logger.Debug("task toggled", "id", t.ID, "completed", t.Completed)
	return Result{Action: ActionToggled, Task: t, Warning: c.persist(ctx)}
}

// Delete removes a task.
func (c *Controller) Delete(ctx context.Context, id task.ID) Result {
	t, err := c.list.Remove(id)
	if err != nil {
		return Result{Action: ActionNone, Err: err}
	}
	if !c.view.RemoveRow(t.ID) {
		c.resync()
	}
	c.logger.Debug("task deleted", "id", t.ID)
	return Result{Action: ActionDeleted, Task: t, Warning: c.persist(ctx)}
}

// persist writes the whole list. Failures are logged and returned as a
// warning; the in-memory list stays authoritative.
func (c *Controller) persist(ctx context.Context) error {
	if err := c.store.Persist(ctx, c.list.Records()); err != nil {
		c.logger.Warn("could not save tasks, changes kept in memory", "error", err)
		c.degraded = true
		return err
	}
	if c.degraded {
		c.logger.Info("storage recovered")
		c.degraded = false
	}
	return nil
}

// resync rebuilds the view from the list. Only reached if the view was
// modified behind the controller's back.
func (c *Controller) resync() {
	c.logger.Warn("view out of sync with task list, rebuilding",
		"rows", c.view.Len(), "tasks", c.list.Len())
	c.view.Reset()
	for _, t := range c.list.Tasks() {
		c.view.AppendRow(view.RenderRow(t))
	}
}

// CheckConsistency returns an error if the view rows differ from the list.
func (c *Controller) CheckConsistency() error {
	tasks := c.list.Tasks()
	rows := c.view.Rows()
	if len(tasks) != len(rows) {
		return fmt.Errorf("view has %d rows, list has %d tasks", len(rows), len(tasks))
	}
	for i, t := range tasks {
		if rows[i] != view.RenderRow(t) {
			return fmt.Errorf("row %d differs: %+v vs task %+v", i, rows[i], t)
		}
	}
	return nil
}
