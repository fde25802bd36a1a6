package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the timer display
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Label  lipgloss.Style

	// Clock face
	Clock       lipgloss.Style
	ClockPaused lipgloss.Style
	ClockDone   lipgloss.Style

	// Prompts and feedback
	Prompt      lipgloss.Style
	PromptError lipgloss.Style
	Status      lipgloss.Style
	Confirm     lipgloss.Style

	// Input styles
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help styles
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	clock := lipgloss.NewStyle().
		Bold(true).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder())

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Clock: clock.
			Foreground(t.Primary).
			BorderForeground(t.Primary),

		ClockPaused: clock.
			Foreground(t.Warning).
			BorderForeground(t.Warning),

		ClockDone: clock.
			Foreground(t.Success).
			BorderForeground(t.Success),

		Prompt: lipgloss.NewStyle().
			Foreground(t.Secondary),

		PromptError: lipgloss.NewStyle().
			Foreground(t.Error),

		Status: lipgloss.NewStyle().
			Foreground(t.Info),

		Confirm: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
