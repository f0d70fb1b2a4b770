// Package tui is the interactive terminal front end: an input field, the
// rendered task list and an inline status line. Every list click goes
// through a single mouse handler that hit-tests the row and hands the
// target to the controller.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"todo/internal/controller"
	"todo/internal/view"
)

// statusFadeDelay is how long a status message stays visible before the
// key help returns.
const statusFadeDelay = 4 * time.Second

// Screen layout: header, input, blank line, then the rows. Below the rows
// come a blank line and the status line.
const (
	inputLine    = 1
	listTop      = 3
	chromeHeight = listTop + 2
)

// FocusRegion identifies which component receives keys.
type FocusRegion int

const (
	FocusInput FocusRegion = iota
	FocusList
)

// statusFadeMsg clears the status line if no newer message replaced it.
type statusFadeMsg struct {
	seq int
}

// Model is the bubbletea model for the todo UI.
type Model struct {
	ctx   context.Context
	ctl   *controller.Controller
	keys  KeyMap
	theme view.Theme
	input textinput.Model

	focus  FocusRegion
	cursor int
	offset int

	width  int
	height int

	status      string
	statusLevel slog.Level
	statusSeq   int
}

// NewModel creates a model over a loaded controller. ctx bounds the
// storage calls made while handling input.
func NewModel(ctx context.Context, ctl *controller.Controller) Model {
	input := textinput.New()
	input.Prompt = "+ "
	input.Placeholder = "What needs to be done?"
	input.Focus()

	return Model{
		ctx:   ctx,
		ctl:   ctl,
		keys:  DefaultKeyMap,
		theme: ctl.View().Theme(),
		input: input,
	}
}

// Focus returns the focused region.
func (model Model) Focus() FocusRegion { return model.focus }

// Cursor returns the selected row index.
func (model Model) Cursor() int { return model.cursor }

// Status returns the current status line message, or "" when idle.
func (model Model) Status() string { return model.status }

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		cmd := model.handleKey(message)
		return model, cmd

	case tea.MouseMsg:
		cmd := model.handleMouse(message)
		return model, cmd

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ctl.View().SetWidth(message.Width)
		model.input.Width = max(message.Width-ansi.StringWidth(model.input.Prompt)-1, 1)
		model.scrollToCursor()
		return model, nil

	case logRecordMsg:
		// Results already report their own warnings; log records only
		// fill an idle status line.
		var cmd tea.Cmd
		if model.status == "" {
			cmd = model.setStatus(message.Summary, message.Level)
		}
		return model, cmd

	case statusFadeMsg:
		if message.seq == model.statusSeq {
			model.status = ""
		}
		return model, nil
	}

	if model.focus == FocusInput {
		var cmd tea.Cmd
		model.input, cmd = model.input.Update(message)
		return model, cmd
	}
	return model, nil
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.ForceQuit):
		return tea.Quit
	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusInput {
			model.setFocus(FocusList)
		} else {
			model.setFocus(FocusInput)
		}
		return nil
	}

	if model.focus == FocusInput {
		if key.Matches(message, model.keys.Submit) {
			return model.submit()
		}
		var cmd tea.Cmd
		model.input, cmd = model.input.Update(message)
		return cmd
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
		model.scrollToCursor()
	case key.Matches(message, model.keys.Down):
		if model.cursor < model.ctl.View().Len()-1 {
			model.cursor++
		}
		model.scrollToCursor()
	case key.Matches(message, model.keys.Toggle):
		if row, ok := model.ctl.View().Row(model.cursor); ok {
			return model.apply(model.ctl.Toggle(model.ctx, row.TaskID))
		}
	case key.Matches(message, model.keys.Delete):
		if row, ok := model.ctl.View().Row(model.cursor); ok {
			return model.apply(model.ctl.Delete(model.ctx, row.TaskID))
		}
	}
	return nil
}

// handleMouse is the one click handler for the whole list. Left presses
// on a row are hit-tested and dispatched by the controller; the wheel
// scrolls.
func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.scrollBy(-1)
		return nil
	case tea.MouseButtonWheelDown:
		model.scrollBy(1)
		return nil
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	if message.Y == inputLine {
		model.setFocus(FocusInput)
		return nil
	}
	if message.Y < listTop || message.Y >= listTop+model.visibleRows() {
		return nil
	}

	index := model.offset + message.Y - listTop
	target := model.ctl.View().Locate(index, message.X)
	if target.TaskID != 0 {
		model.setFocus(FocusList)
		model.cursor = index
	}
	return model.apply(model.ctl.Click(model.ctx, target))
}

func (model *Model) submit() tea.Cmd {
	result := model.ctl.Submit(model.ctx, model.input.Value())
	if result.Action == controller.ActionAdded {
		model.input.Reset()
		model.cursor = model.ctl.View().Len() - 1
		model.scrollToCursor()
	}
	return model.apply(result)
}

// apply reports a controller result on the status line.
func (model *Model) apply(result controller.Result) tea.Cmd {
	model.clampCursor()
	switch {
	case result.Err != nil:
		return model.setStatus(result.Err.Error(), slog.LevelError)
	case result.Warning != nil:
		return model.setStatus("warning: "+result.Warning.Error(), slog.LevelWarn)
	}
	return nil
}

// setStatus shows text on the status line and schedules its fade.
func (model *Model) setStatus(text string, level slog.Level) tea.Cmd {
	model.statusSeq++
	model.status = text
	model.statusLevel = level
	seq := model.statusSeq
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{seq: seq}
	})
}

func (model *Model) setFocus(focus FocusRegion) {
	model.focus = focus
	if focus == FocusInput {
		model.input.Focus()
	} else {
		model.input.Blur()
	}
}

func (model *Model) clampCursor() {
	n := model.ctl.View().Len()
	if model.cursor >= n {
		model.cursor = n - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.scrollToCursor()
}

// visibleRows is the number of list rows that fit on screen. Before the
// first WindowSizeMsg every row is shown.
func (model *Model) visibleRows() int {
	if model.height == 0 {
		return model.ctl.View().Len()
	}
	return max(model.height-chromeHeight, 1)
}

func (model *Model) scrollToCursor() {
	visible := model.visibleRows()
	if model.cursor < model.offset {
		model.offset = model.cursor
	}
	if visible > 0 && model.cursor >= model.offset+visible {
		model.offset = model.cursor - visible + 1
	}
	model.clampOffset()
}

func (model *Model) scrollBy(delta int) {
	model.offset += delta
	model.clampOffset()
}

func (model *Model) clampOffset() {
	maxOffset := max(model.ctl.View().Len()-model.visibleRows(), 0)
	model.offset = min(max(model.offset, 0), maxOffset)
}

// View implements tea.Model.
func (model Model) View() string {
	var b strings.Builder

	b.WriteString(model.header())
	b.WriteByte('\n')
	b.WriteString(model.input.View())
	b.WriteString("\n\n")

	rows := model.ctl.View()
	if rows.Len() == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("  no tasks yet"))
	} else {
		lines := strings.Split(rows.Render(model.cursor, model.focus == FocusList), "\n")
		end := min(model.offset+model.visibleRows(), len(lines))
		b.WriteString(strings.Join(lines[model.offset:end], "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(model.statusLine())
	return b.String()
}

func (model Model) header() string {
	open, done := 0, 0
	for _, row := range model.ctl.View().Rows() {
		if row.Completed {
			done++
		} else {
			open++
		}
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render("todo")
	counts := lipgloss.NewStyle().Foreground(model.theme.FaintText).
		Render(fmt.Sprintf("  %d open, %d done", open, done))
	header := title + counts
	if model.ctl.Degraded() {
		header += lipgloss.NewStyle().Foreground(model.theme.WarningText).Render("  (not saved)")
	}
	return header
}

func (model Model) statusLine() string {
	if model.status != "" {
		color := model.theme.HelpText
		switch {
		case model.statusLevel >= slog.LevelError:
			color = model.theme.ErrorText
		case model.statusLevel >= slog.LevelWarn:
			color = model.theme.WarningText
		}
		text := model.status
		if model.width > 0 {
			text = ansi.Truncate(text, model.width, "…")
		}
		return lipgloss.NewStyle().Foreground(color).Render(text)
	}

	bindings := model.keys.inputHelp()
	if model.focus == FocusList {
		bindings = model.keys.listHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	text := strings.Join(parts, " · ")
	if model.width > 0 {
		text = ansi.Truncate(text, model.width, "…")
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(text)
}
