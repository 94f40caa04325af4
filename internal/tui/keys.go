package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the playground.
type KeyMap struct {
	// Anchor movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions
	Present     key.Binding
	Dismiss     key.Binding
	Direction   key.Binding
	Modal       key.Binding
	Passthrough key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	Reflow      key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Present, k.Dismiss, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Present, k.Dismiss, k.Direction, k.Modal},
		{k.Passthrough, k.Grow, k.Shrink, k.Reflow},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move anchor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move anchor down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "move anchor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "move anchor right"),
		),
		Present: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p", "present"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d", "dismiss"),
		),
		Direction: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle direction"),
		),
		Modal: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle modal"),
		),
		Passthrough: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle passthrough region"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "grow content"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shrink content"),
		),
		Reflow: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reflow"),
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
