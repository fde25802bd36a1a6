package ui

import (
	"github.com/dori/obstick/internal/timer"
)

// Messages for inter-component communication

// SetupCompleteMsg carries the configuration the setup prompts
// collected; the root model switches to the running timer on it.
type SetupCompleteMsg struct {
	Config timer.Config
}

// TickMsg is sent on every timer tick while a cycle runs.
type TickMsg struct{}

// RunFailedMsg carries a fatal run error (bad spec on restart, sink
// write failure). The program exits non-zero after showing it.
type RunFailedMsg struct {
	Err error
}
