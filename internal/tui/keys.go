package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Anchor
	Next  key.Binding
	Prev  key.Binding
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Tip
	Toggle      key.Binding
	AutoDismiss key.Binding
	Dismiss     key.Binding
	Animation   key.Binding
	Direction   key.Binding
	Shadow      key.Binding
	Theme       key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.AutoDismiss, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.AutoDismiss, k.Dismiss},
		{k.Animation, k.Direction, k.Shadow, k.Theme},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab/n", "next view"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "N"),
			key.WithHelp("shift+tab/N", "previous view"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move view up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move view down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "move view left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "move view right"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "present/dismiss"),
		),
		AutoDismiss: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "present with auto-dismiss"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d", "dismiss"),
		),
		Animation: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "slide/pop"),
		),
		Direction: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "preferred direction"),
		),
		Shadow: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle shadow"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
