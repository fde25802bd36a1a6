package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Timer controls
	Restart key.Binding
	Pause   key.Binding
	Quit    key.Binding

	// Confirmation
	Yes key.Binding
	No  key.Binding

	// General
	ForceQuit key.Binding
	Confirm   key.Binding
	Back      key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Restart: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "pause/resume"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q"),
			key.WithHelp("q", "quit"),
		),

		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "cancel"),
		),

		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}
