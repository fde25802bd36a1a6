package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/obstick/internal/format"
	"github.com/dori/obstick/internal/timer"
	"github.com/dori/obstick/internal/timespec"
	"github.com/dori/obstick/internal/ui/theme"
)

type setupStep int

const (
	stepMode setupStep = iota
	stepTime
	stepDate
	stepFormat
)

// SetupModel collects the timer configuration interactively when the
// command line did not provide one. Invalid entries re-prompt in place;
// nothing here ever exits the process.
type SetupModel struct {
	input  textinput.Model
	keys   KeyMap
	step   setupStep
	errMsg string

	defaultFormat int
	cfg           timer.Config

	width  int
	height int
}

// NewSetupModel creates the setup prompt sequence. defaultFormat is
// used when the display format entry is left empty.
func NewSetupModel(defaultFormat int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "0, 1 or 2"
	ti.CharLimit = 16
	ti.Width = 24
	ti.Focus()

	return SetupModel{
		input:         ti,
		keys:          DefaultKeyMap(),
		step:          stepMode,
		defaultFormat: defaultFormat,
	}
}

// SetSize sets the view dimensions
func (m SetupModel) SetSize(width, height int) SetupModel {
	m.width = width
	m.height = height
	return m
}

// Init initializes the setup view
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m.commit()
		case key.Matches(msg, m.keys.Back):
			return m.back()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commit validates the current entry and advances to the next step,
// emitting SetupCompleteMsg after the last one.
func (m SetupModel) commit() (SetupModel, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())

	switch m.step {
	case stepMode:
		n, err := strconv.Atoi(value)
		mode, ok := timer.ParseMode(n)
		if err != nil || !ok {
			m.errMsg = "Invalid mode. Please enter 0, 1, or 2."
			return m, nil
		}
		m.cfg.Mode = mode
		if mode == timer.ModeCountUp {
			// Count-up needs no time or date.
			m.cfg.TimeSpec = "0"
			return m.advance(stepFormat)
		}
		return m.advance(stepTime)

	case stepTime:
		if _, err := timespec.ParseTimeSpec(value); err != nil {
			m.errMsg = fmt.Sprintf("Invalid time format: %v", err)
			return m, nil
		}
		m.cfg.TimeSpec = value
		if m.cfg.Mode == timer.ModeToTarget {
			return m.advance(stepDate)
		}
		return m.advance(stepFormat)

	case stepDate:
		if _, err := timespec.ParseDateSpec(value, time.Now()); err != nil {
			m.errMsg = fmt.Sprintf("Invalid date: %v", err)
			return m, nil
		}
		m.cfg.DateSpec = value
		return m.advance(stepFormat)

	default: // stepFormat
		n := m.defaultFormat
		if value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				m.errMsg = "Invalid input. Please enter a number."
				return m, nil
			}
			n = parsed
		}
		style, ok := format.ParseStyle(n)
		if !ok {
			m.errMsg = "Invalid display mode. Please enter 0, 1, or 2."
			return m, nil
		}
		m.cfg.Style = style

		cfg := m.cfg
		return m, func() tea.Msg { return SetupCompleteMsg{Config: cfg} }
	}
}

// back returns to the previous prompt so a typo in an earlier answer
// does not force a restart of the whole sequence.
func (m SetupModel) back() (SetupModel, tea.Cmd) {
	switch m.step {
	case stepTime:
		return m.advance(stepMode)
	case stepDate:
		return m.advance(stepTime)
	case stepFormat:
		switch m.cfg.Mode {
		case timer.ModeToTarget:
			return m.advance(stepDate)
		case timer.ModeCountUp:
			return m.advance(stepMode)
		default:
			return m.advance(stepTime)
		}
	}
	return m, nil
}

func (m SetupModel) advance(next setupStep) (SetupModel, tea.Cmd) {
	m.step = next
	m.errMsg = ""
	m.input.Reset()
	m.input.Placeholder = m.placeholder()
	return m, textinput.Blink
}

func (m SetupModel) placeholder() string {
	switch m.step {
	case stepTime:
		return "ss, mm:ss or hh:mm:ss"
	case stepDate:
		return "mm/dd or yyyy/mm/dd, empty = today"
	case stepFormat:
		return fmt.Sprintf("0, 1 or 2 (default %d)", m.defaultFormat)
	default:
		return "0, 1 or 2"
	}
}

// View renders the setup view
func (m SetupModel) View() string {
	styles := theme.Current.Styles

	var sections []string
	sections = append(sections, styles.Header.Render("obstick setup"))

	prompt, detail := m.promptText()
	sections = append(sections, styles.Prompt.Render(prompt))
	if detail != "" {
		sections = append(sections, styles.Label.Render(detail))
	}

	sections = append(sections, styles.InputFocused.Render(m.input.View()))

	if m.errMsg != "" {
		sections = append(sections, styles.PromptError.Render(m.errMsg))
	}

	hint := func(b key.Binding) string {
		return styles.HelpKey.Render(b.Help().Key) + styles.HelpDesc.Render(" "+b.Help().Desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")
	hints := hint(m.keys.Confirm) + sep + hint(m.keys.Back) + sep + hint(m.keys.ForceQuit)
	sections = append(sections, hints)

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
}

func (m SetupModel) promptText() (string, string) {
	switch m.step {
	case stepMode:
		return "Select mode:",
			"0 - countdown to a time of day\n1 - countdown from a duration\n2 - count up from now"
	case stepTime:
		if m.cfg.Mode == timer.ModeToTarget {
			return "Enter target time (ss, mm:ss or hh:mm:ss):", ""
		}
		return "Enter countdown duration (ss, mm:ss or hh:mm:ss):", ""
	case stepDate:
		return "Enter target date (mm/dd or yyyy/mm/dd, empty for today):", ""
	default:
		return "Select display format:",
			"0 - shortest (4:03)\n1 - short with padding (04:03)\n2 - full (00:04:03)"
	}
}
