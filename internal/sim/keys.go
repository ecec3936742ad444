package sim

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/winstack/internal/button"
)

// KeyMap defines the key bindings for the simulator.
type KeyMap struct {
	// Physical buttons
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	// Demo actions
	Notify key.Binding
	Push   key.Binding
	Pop    key.Binding

	// Global
	Help key.Binding
	Quit key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Notify, k.Push, k.Pop},
		{k.Help, k.Quit},
	}
}

// Button returns the physical button bound to msg, if any.
func (k KeyMap) Button(msg tea.KeyMsg) (button.ID, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return button.Up, true
	case key.Matches(msg, k.Down):
		return button.Down, true
	case key.Matches(msg, k.Select):
		return button.Select, true
	case key.Matches(msg, k.Back):
		return button.Back, true
	}
	return 0, false
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "left", "h"),
			key.WithHelp("esc", "back"),
		),
		Notify: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notify"),
		),
		Push: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "push card"),
		),
		Pop: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "pop card"),
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
