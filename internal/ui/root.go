package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/obstick/internal/app"
	"github.com/dori/obstick/internal/timer"
)

type phase int

const (
	phaseSetup phase = iota
	phaseRun
)

// RootModel is the top-level model. It runs the setup prompts first
// when no configuration came from the command line, then hands over to
// the running timer.
type RootModel struct {
	app  *app.App
	keys KeyMap

	phase phase
	setup SetupModel
	run   RunModel

	width  int
	height int
}

// NewRootModel creates a root model that starts with the setup
// prompts.
func NewRootModel(application *app.App) RootModel {
	return RootModel{
		app:   application,
		keys:  DefaultKeyMap(),
		phase: phaseSetup,
		setup: NewSetupModel(application.Settings.DisplayFormat),
	}
}

// NewRootModelWithConfig creates a root model that skips setup and
// runs cfg directly.
func NewRootModelWithConfig(application *app.App, cfg timer.Config) RootModel {
	return RootModel{
		app:   application,
		keys:  DefaultKeyMap(),
		phase: phaseRun,
		run:   NewRunModel(application, cfg, application.Settings.TickInterval),
	}
}

// Err returns the fatal error the run ended with, if any.
func (m RootModel) Err() error {
	return m.run.Err()
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	if m.phase == phaseRun {
		return m.run.Init()
	}
	return m.setup.Init()
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.setup = m.setup.SetSize(msg.Width, msg.Height)
		m.run = m.run.SetSize(msg.Width, msg.Height)
		return m, nil

	case SetupCompleteMsg:
		m.phase = phaseRun
		m.run = NewRunModel(m.app, msg.Config, m.app.Settings.TickInterval)
		m.run = m.run.SetSize(m.width, m.height)
		return m, m.run.Init()

	case tea.KeyMsg:
		// During setup ctrl+c aborts outright; the run phase
		// handles it itself so the sink gets cleared first.
		if m.phase == phaseSetup && key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.phase {
	case phaseSetup:
		m.setup, cmd = m.setup.Update(msg)
	case phaseRun:
		m.run, cmd = m.run.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.phase == phaseRun {
		return m.run.View()
	}
	return m.setup.View()
}
