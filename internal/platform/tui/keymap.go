package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dso-arcade/internal/core"
)

// KeyMap binds keys to host actions. It implements help.KeyMap.
type KeyMap struct {
	Button1 key.Binding
	Button2 key.Binding
	Button3 key.Binding
	Button4 key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings. Buttons 1 and 4 sit on the
// arrows since they steer the squash racket.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Button1: key.NewBinding(
			key.WithKeys("1", "d", "right"),
			key.WithHelp("→/1", "button 1"),
		),
		Button2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "button 2"),
		),
		Button3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "button 3"),
		),
		Button4: key.NewBinding(
			key.WithKeys("4", "a", "left"),
			key.WithHelp("←/4", "button 4"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset board"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Button1, k.Button4, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped in columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Button1, k.Button2, k.Button3, k.Button4},
		{k.Restart, k.Help, k.Quit},
	}
}

// MapKey translates a key message to a host action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Button1):
		return core.ActionButton1
	case key.Matches(msg, k.Button2):
		return core.ActionButton2
	case key.Matches(msg, k.Button3):
		return core.ActionButton3
	case key.Matches(msg, k.Button4):
		return core.ActionButton4
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}
