// Package timer implements the countdown/count-up state machine and the
// tick loop that drives it. All time arithmetic takes an explicit "now"
// so the machine itself is deterministic; only the runners touch the
// wall clock.
package timer

import (
	"github.com/dori/obstick/internal/format"
)

// Mode selects how the displayed value is derived.
type Mode int

const (
	// ModeToTarget counts down to an absolute wall-clock instant
	// (date at local midnight plus a time-of-day offset). It is
	// anchored to the calendar, so pausing does not stretch it.
	ModeToTarget Mode = iota
	// ModeFromDuration counts down a fixed duration from cycle start.
	ModeFromDuration
	// ModeCountUp counts elapsed time since cycle start.
	ModeCountUp
)

// String returns the display name for a mode
func (m Mode) String() string {
	switch m {
	case ModeToTarget:
		return "to-target"
	case ModeFromDuration:
		return "countdown"
	case ModeCountUp:
		return "count-up"
	default:
		return "unknown"
	}
}

// ParseMode converts a 0/1/2 value to a Mode.
func ParseMode(n int) (Mode, bool) {
	if n < 0 || n > 2 {
		return ModeToTarget, false
	}
	return Mode(n), true
}

// Config is the immutable run configuration. The time and date specs
// are kept as the raw strings the user gave and re-parsed at the start
// of every cycle, so a relative date like an empty ("today") spec
// re-anchors on restart.
type Config struct {
	Mode     Mode
	TimeSpec string
	DateSpec string
	Style    format.Style
}

// Outcome records how a cycle ended.
type Outcome string

const (
	OutcomeCompleted   Outcome = "completed"
	OutcomeQuit        Outcome = "quit"
	OutcomeRestarted   Outcome = "restarted"
	OutcomeInterrupted Outcome = "interrupted"
)
