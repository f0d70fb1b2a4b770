package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the todo UI.
type KeyMap struct {
	// List navigation.
	Up   key.Binding
	Down key.Binding

	// FocusToggle moves focus between the input field and the list.
	FocusToggle key.Binding

	Submit key.Binding
	Toggle key.Binding
	Delete key.Binding

	// Quit applies while the list has focus. ForceQuit applies everywhere,
	// including while typing.
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "focus"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("x", " "),
		key.WithHelp("x", "toggle"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// inputHelp and listHelp are the bindings shown on the idle status line
// for each focus.
func (k KeyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.FocusToggle, k.ForceQuit}
}

func (k KeyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Delete, k.FocusToggle, k.Quit}
}
