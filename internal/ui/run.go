package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/obstick/internal/app"
	"github.com/dori/obstick/internal/timer"
	"github.com/dori/obstick/internal/ui/theme"
)

// RunModel drives one timer session. The bubbletea update loop is the
// single place the engine is touched, which gives the key listener and
// the tick loop their ordering for free.
type RunModel struct {
	app    *app.App
	keys   KeyMap
	engine *timer.Engine

	interval    time.Duration
	display     string
	lastSeconds int
	statusMsg   string
	sessionID   string

	finished    bool
	interrupted bool
	err         error

	width  int
	height int
}

// NewRunModel creates a running-timer model for cfg.
func NewRunModel(application *app.App, cfg timer.Config, interval time.Duration) RunModel {
	if interval <= 0 {
		interval = timer.DefaultInterval
	}
	return RunModel{
		app:      application,
		keys:     DefaultKeyMap(),
		engine:   timer.New(cfg),
		interval: interval,
	}
}

// Err returns the fatal error the run ended with, if any.
func (m RunModel) Err() error { return m.err }

// Interrupted reports whether the run ended on ctrl+c.
func (m RunModel) Interrupted() bool { return m.interrupted }

// SetSize sets the view dimensions
func (m RunModel) SetSize(width, height int) RunModel {
	m.width = width
	m.height = height
	return m
}

// tickCmd schedules the next tick
func (m RunModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

type startCycleMsg struct{}

// Init starts the first cycle
func (m RunModel) Init() tea.Cmd {
	return func() tea.Msg { return startCycleMsg{} }
}

// startCycle begins a session cycle: reset the engine's per-cycle
// state, re-parse the specs and open a journal row.
func (m RunModel) startCycle() (RunModel, tea.Cmd) {
	now := time.Now()
	if err := m.engine.StartCycle(now); err != nil {
		return m, func() tea.Msg { return RunFailedMsg{Err: err} }
	}

	if m.app.Journal != nil {
		id, err := m.app.Journal.StartSession(m.engine.Config(), now)
		if err == nil {
			m.sessionID = id
		}
	}

	return m, m.tickCmd()
}

func (m RunModel) endSession(outcome timer.Outcome) {
	if m.app.Journal == nil || m.sessionID == "" {
		return
	}
	m.app.Journal.EndSession(m.sessionID, time.Now(), m.engine.TotalPaused(), outcome)
}

// Update handles messages
func (m RunModel) Update(msg tea.Msg) (RunModel, tea.Cmd) {
	switch msg := msg.(type) {
	case startCycleMsg:
		return m.startCycle()

	case TickMsg:
		return m.tick()

	case RunFailedMsg:
		m.err = msg.Err
		m.app.Sink.Clear()
		m.endSession(timer.OutcomeInterrupted)
		return m, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.interrupted = true
			m.app.Sink.Clear()
			m.endSession(timer.OutcomeInterrupted)
			return m, tea.Quit
		}
		if len(msg.Runes) == 1 {
			note := m.engine.HandleKey(msg.Runes[0], time.Now())
			m.applyNote(note)
		}
		return m, nil
	}

	return m, nil
}

func (m *RunModel) applyNote(note timer.Note) {
	switch note {
	case timer.NotePaused:
		m.statusMsg = "Paused"
	case timer.NoteResumed:
		m.statusMsg = "Resumed"
	case timer.NoteCancelled:
		m.statusMsg = "Cancelled."
	case timer.NoteRestartRequested:
		m.statusMsg = "Restarting..."
	case timer.NoteQuitRequested:
		m.statusMsg = "Exiting..."
	case timer.NoteConfirmRestart, timer.NoteConfirmQuit:
		m.statusMsg = ""
	}
}

func (m RunModel) tick() (RunModel, tea.Cmd) {
	step := m.engine.Tick(time.Now())
	if step.Publish {
		if err := m.app.Sink.Publish(step.Output); err != nil {
			return m, func() tea.Msg { return RunFailedMsg{Err: err} }
		}
		m.display = step.Output
		m.lastSeconds = step.Seconds
	}

	if !step.CycleOver {
		return m, m.tickCmd()
	}

	restart := m.engine.EndCycle()
	switch {
	case step.Completed:
		m.endSession(timer.OutcomeCompleted)
		m.app.Notifier.SendTimeUp(fmt.Sprintf("%s timer finished", m.engine.Config().Mode))
		m.finished = true
		m.statusMsg = "Time's up!"
		return m, tea.Quit

	case restart:
		m.endSession(timer.OutcomeRestarted)
		return m.startCycle()

	default:
		m.endSession(timer.OutcomeQuit)
		return m, tea.Quit
	}
}

// View renders the running timer
func (m RunModel) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var sections []string

	header := styles.Header.Render("obstick") +
		styles.Label.Render(fmt.Sprintf(" [%s]", m.engine.Config().Mode))
	sections = append(sections, header)

	sections = append(sections, m.renderClock())

	if bar := m.renderProgress(); bar != "" {
		sections = append(sections, bar)
	}

	if m.engine.Pending() != timer.PendingNone {
		prompt := "Restart? (y/n)"
		if m.engine.Pending() == timer.PendingQuit {
			prompt = "Quit? (y/n)"
		}
		sections = append(sections, styles.Confirm.Render(prompt))
	} else if m.statusMsg != "" {
		sections = append(sections, styles.Status.Render(m.statusMsg))
	}

	sections = append(sections, styles.Label.Render(
		fmt.Sprintf("writing %s", m.app.Sink.Path())))

	hint := func(b key.Binding) string {
		return styles.HelpKey.Render(b.Help().Key) + styles.HelpDesc.Render(" "+b.Help().Desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")
	var hints string
	if m.engine.Pending() != timer.PendingNone {
		hints = hint(m.keys.Yes) + sep + hint(m.keys.No)
	} else if m.engine.Config().Mode == timer.ModeToTarget {
		// Pause has no effect on an absolute deadline.
		hints = hint(m.keys.Restart) + sep + hint(m.keys.Quit)
	} else {
		hints = hint(m.keys.Restart) + sep + hint(m.keys.Pause) + sep + hint(m.keys.Quit)
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(t.Subtle).Render(hints))

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
}

func (m RunModel) renderClock() string {
	styles := theme.Current.Styles

	display := m.display
	if display == "" {
		display = "..."
	}

	var label string
	style := styles.Clock
	switch {
	case m.finished:
		label = "DONE"
		style = styles.ClockDone
	case m.engine.Paused() && m.engine.Config().Mode != timer.ModeToTarget:
		label = "PAUSED"
		style = styles.ClockPaused
	case m.engine.Config().Mode == timer.ModeCountUp:
		label = "ELAPSED"
	default:
		label = "REMAINING"
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		styles.Label.Render(label),
		style.Render(display),
	)
}

// renderProgress draws a completion bar for duration countdowns. The
// other modes have no fixed total to fill against.
func (m RunModel) renderProgress() string {
	if m.engine.Config().Mode != timer.ModeFromDuration {
		return ""
	}
	total := int(m.engine.Duration() / time.Second)
	if total <= 0 || m.display == "" {
		return ""
	}

	progress := 1.0 - float64(m.lastSeconds)/float64(total)
	barWidth := 30
	filled := int(progress * float64(barWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	color := theme.Current.Theme.Primary
	if m.engine.Paused() {
		color = theme.Current.Theme.Warning
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
