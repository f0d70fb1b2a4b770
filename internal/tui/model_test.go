package tui

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"todo/internal/controller"
	"todo/internal/storage"
	"todo/internal/testutil"
	"todo/internal/view"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, backend *testutil.FakeBackend) Model {
	t.Helper()
	ctl := controller.New(storage.NewTasks(backend, nil), view.New(view.DefaultTheme), nil)
	if res := ctl.Load(context.Background()); res.Err != nil {
		t.Fatalf("Load: %v", res.Err)
	}
	return NewModel(context.Background(), ctl)
}

func update(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := model.Update(message)
	result, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return result, cmd
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, r := range text {
		model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return model
}

func press(t *testing.T, model Model, keyType tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, model, tea.KeyMsg{Type: keyType})
}

func pressRune(t *testing.T, model Model, r rune) (Model, tea.Cmd) {
	t.Helper()
	return update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func click(t *testing.T, model Model, x, y int) (Model, tea.Cmd) {
	t.Helper()
	return update(t, model, tea.MouseMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
}

func assertQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func seeded(t *testing.T, value string) (Model, *testutil.FakeBackend) {
	t.Helper()
	backend := testutil.NewFakeBackend()
	backend.Seed(storage.TasksKey, value)
	return newTestModel(t, backend), backend
}

func TestNewModel(t *testing.T) {
	model := newTestModel(t, testutil.NewFakeBackend())

	if model.Focus() != FocusInput {
		t.Errorf("expected input focus, got %v", model.Focus())
	}
	if !strings.Contains(model.View(), "no tasks yet") {
		t.Errorf("expected empty state, got %q", model.View())
	}
}

func TestSubmit(t *testing.T) {
	backend := testutil.NewFakeBackend()
	model := newTestModel(t, backend)

	model = typeText(t, model, "Buy milk")
	model, _ = press(t, model, tea.KeyEnter)

	if got, _ := backend.Value(storage.TasksKey); got != `[{"text":"Buy milk","completed":false}]` {
		t.Errorf("unexpected persisted value %s", got)
	}
	if model.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", model.input.Value())
	}
	if !strings.Contains(model.View(), "[ ] Buy milk  [del]") {
		t.Errorf("expected row in view, got %q", model.View())
	}
	if model.Status() != "" {
		t.Errorf("expected no status, got %q", model.Status())
	}
}

func TestSubmit_BlankShowsInlineError(t *testing.T) {
	backend := testutil.NewFakeBackend()
	model := newTestModel(t, backend)

	model = typeText(t, model, "   ")
	model, cmd := press(t, model, tea.KeyEnter)

	if model.Status() != "task text required" {
		t.Errorf("expected validation message, got %q", model.Status())
	}
	if cmd == nil {
		t.Error("expected a fade command")
	}
	if backend.Writes(storage.TasksKey) != 0 {
		t.Errorf("expected no writes, got %d", backend.Writes(storage.TasksKey))
	}
	if !strings.Contains(model.View(), "task text required") {
		t.Error("expected status line in view")
	}
}

func TestStorageFailureShowsWarning(t *testing.T) {
	backend := testutil.NewFakeBackend()
	model := newTestModel(t, backend)
	backend.SetErr = testutil.ErrQuotaExceeded

	model = typeText(t, model, "Buy milk")
	model, _ = press(t, model, tea.KeyEnter)

	if !strings.HasPrefix(model.Status(), "warning: ") {
		t.Errorf("expected storage warning, got %q", model.Status())
	}
	if !strings.Contains(model.View(), "Buy milk") {
		t.Error("expected task kept in memory")
	}
	if !strings.Contains(model.View(), "(not saved)") {
		t.Error("expected degraded marker in header")
	}
}

func TestKeyboardToggleAndDelete(t *testing.T) {
	model, backend := seeded(t, `[{"text":"a","completed":false},{"text":"b","completed":false}]`)

	model, _ = press(t, model, tea.KeyTab)
	if model.Focus() != FocusList {
		t.Fatalf("expected list focus, got %v", model.Focus())
	}

	model, _ = pressRune(t, model, 'j')
	if model.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", model.Cursor())
	}
	model, _ = pressRune(t, model, 'j')
	if model.Cursor() != 1 {
		t.Errorf("expected cursor to stop at last row, got %d", model.Cursor())
	}

	model, _ = pressRune(t, model, 'x')
	want := `[{"text":"a","completed":false},{"text":"b","completed":true}]`
	if got, _ := backend.Value(storage.TasksKey); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	model, _ = pressRune(t, model, 'd')
	if got, _ := backend.Value(storage.TasksKey); got != `[{"text":"a","completed":false}]` {
		t.Errorf("unexpected persisted value %s", got)
	}
	if model.Cursor() != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", model.Cursor())
	}
}

func TestMouseClickTextToggles(t *testing.T) {
	model, backend := seeded(t, `[{"text":"Buy milk","completed":false}]`)

	// Row 0 is drawn on screen line 3; the text starts at column 6.
	model, _ = click(t, model, 6, listTop)

	if got, _ := backend.Value(storage.TasksKey); got != `[{"text":"Buy milk","completed":true}]` {
		t.Errorf("unexpected persisted value %s", got)
	}
	if model.Focus() != FocusList {
		t.Errorf("expected click to focus the list, got %v", model.Focus())
	}
}

func TestMouseClickDeleteRemoves(t *testing.T) {
	model, backend := seeded(t, `[{"text":"Buy milk","completed":false}]`)

	model, _ = click(t, model, 17, listTop)

	if got, _ := backend.Value(storage.TasksKey); got != `[]` {
		t.Errorf("expected [], got %s", got)
	}
	if !strings.Contains(model.View(), "no tasks yet") {
		t.Error("expected empty state after delete")
	}
}

func TestMouseClickMissIsNoop(t *testing.T) {
	model, backend := seeded(t, `[{"text":"Buy milk","completed":false}]`)

	// Gap between text and delete control, then below the list.
	model, _ = click(t, model, 14, listTop)
	model, _ = click(t, model, 6, listTop+4)

	if backend.Writes(storage.TasksKey) != 0 {
		t.Errorf("expected no writes, got %d", backend.Writes(storage.TasksKey))
	}
}

func TestMouseClickInputFocuses(t *testing.T) {
	model := newTestModel(t, testutil.NewFakeBackend())
	model, _ = press(t, model, tea.KeyTab)

	model, _ = click(t, model, 4, inputLine)

	if model.Focus() != FocusInput {
		t.Errorf("expected input focus, got %v", model.Focus())
	}
}

func TestQuit(t *testing.T) {
	model := newTestModel(t, testutil.NewFakeBackend())

	// q is text while typing.
	model, cmd := pressRune(t, model, 'q')
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q should not quit while typing")
		}
	}
	if model.input.Value() != "q" {
		t.Errorf("expected q typed into input, got %q", model.input.Value())
	}

	_, cmd = press(t, model, tea.KeyEsc)
	assertQuit(t, cmd)

	model, _ = press(t, model, tea.KeyTab)
	_, cmd = pressRune(t, model, 'q')
	assertQuit(t, cmd)
}

func TestStatusFade(t *testing.T) {
	model := newTestModel(t, testutil.NewFakeBackend())
	model, _ = press(t, model, tea.KeyEnter)
	stale := model.statusSeq
	model, _ = press(t, model, tea.KeyEnter)

	model, _ = update(t, model, statusFadeMsg{seq: stale})
	if model.Status() == "" {
		t.Fatal("stale fade should not clear a newer message")
	}

	model, _ = update(t, model, statusFadeMsg{seq: model.statusSeq})
	if model.Status() != "" {
		t.Errorf("expected status cleared, got %q", model.Status())
	}
}

func TestLogRecordFillsIdleStatus(t *testing.T) {
	model := newTestModel(t, testutil.NewFakeBackend())

	model, _ = update(t, model, logRecordMsg{Summary: "storage recovered", Level: slog.LevelInfo})
	if model.Status() != "storage recovered" {
		t.Errorf("expected log record on status line, got %q", model.Status())
	}

	model, _ = update(t, model, logRecordMsg{Summary: "later", Level: slog.LevelWarn})
	if model.Status() != "storage recovered" {
		t.Errorf("expected busy status line to be kept, got %q", model.Status())
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	var records []string
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		records = append(records, `{"text":"`+name+`","completed":false}`)
	}
	model, _ := seeded(t, "["+strings.Join(records, ",")+"]")

	// Height 8 leaves three list rows.
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 40, Height: 8})
	model, _ = press(t, model, tea.KeyTab)
	for range 4 {
		model, _ = pressRune(t, model, 'j')
	}

	if model.offset != 2 {
		t.Errorf("expected offset 2, got %d", model.offset)
	}
	view := model.View()
	if strings.Contains(view, "[ ] a ") || !strings.Contains(view, "> [ ] e") {
		t.Errorf("expected rows c-e visible with e selected, got %q", view)
	}

	// Clicking the first visible line hits row 2 (c).
	model, _ = click(t, model, 6, listTop)
	if model.Cursor() != 2 {
		t.Errorf("expected cursor 2 after click, got %d", model.Cursor())
	}
}
