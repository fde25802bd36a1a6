package timer

import (
	"fmt"
	"time"
	"unicode"

	"github.com/dori/obstick/internal/format"
	"github.com/dori/obstick/internal/timespec"
)

// Pending is a destructive action waiting on y/n confirmation. While
// one is pending, every key except y and n is ignored.
type Pending int

const (
	PendingNone Pending = iota
	PendingRestart
	PendingQuit
)

// Note describes what a key press did, so the surface driving the
// engine can give feedback ("Paused", "Restart? (y/n)", ...).
type Note int

const (
	NoteNone Note = iota
	NotePaused
	NoteResumed
	NoteConfirmRestart
	NoteConfirmQuit
	NoteCancelled
	NoteRestartRequested
	NoteQuitRequested
)

// Step is the result of one tick.
type Step struct {
	Output    string
	Seconds   int  // the clamped value behind Output
	Publish   bool // false while paused (nothing to refresh)
	CycleOver bool
	Completed bool // countdown reached zero
}

// Engine is the timer state machine. It is not safe for concurrent
// use: the owner must feed it keys and ticks from a single goroutine
// (the bubbletea update loop, or the Runner's select loop).
type Engine struct {
	cfg Config

	running          bool
	paused           bool
	restartRequested bool
	quitRequested    bool
	pending          Pending

	pauseStart  time.Time // zero iff not paused
	totalPaused time.Duration

	// Cycle anchors, recomputed by StartCycle.
	target     time.Time     // ModeToTarget
	cycleStart time.Time     // ModeFromDuration, ModeCountUp
	duration   time.Duration // ModeFromDuration
}

// New creates an engine for cfg. Call StartCycle before the first Tick.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, running: true}
}

// Config returns the run configuration.
func (e *Engine) Config() Config { return e.cfg }

// Running reports whether the session loop should keep going.
func (e *Engine) Running() bool { return e.running }

// Paused reports whether elapsed-time accrual is suspended.
func (e *Engine) Paused() bool { return e.paused }

// Pending returns the confirmation currently awaiting y/n, if any.
func (e *Engine) Pending() Pending { return e.pending }

// TotalPaused returns the cumulative paused time of the current cycle.
func (e *Engine) TotalPaused() time.Duration { return e.totalPaused }

// RestartRequested reports whether a confirmed restart is latched.
func (e *Engine) RestartRequested() bool { return e.restartRequested }

// QuitRequested reports whether a confirmed quit is latched.
func (e *Engine) QuitRequested() bool { return e.quitRequested }

// Target returns the wall-clock deadline of the current cycle
// (ModeToTarget only).
func (e *Engine) Target() time.Time { return e.target }

// Duration returns the countdown length of the current cycle
// (ModeFromDuration only).
func (e *Engine) Duration() time.Duration { return e.duration }

// StartCycle resets the per-cycle state and recomputes the anchor
// times, re-parsing the raw specs so relative dates re-evaluate. A
// parse failure here is fatal to the run: outside initial setup there
// is no prompt to recover at.
func (e *Engine) StartCycle(now time.Time) error {
	e.restartRequested = false
	e.totalPaused = 0
	e.pauseStart = time.Time{}
	e.paused = false

	switch e.cfg.Mode {
	case ModeToTarget:
		day, err := timespec.ParseDateSpec(e.cfg.DateSpec, now)
		if err != nil {
			return fmt.Errorf("date spec %q: %w", e.cfg.DateSpec, err)
		}
		offset, err := timespec.ParseTimeSpec(e.cfg.TimeSpec)
		if err != nil {
			return fmt.Errorf("time spec %q: %w", e.cfg.TimeSpec, err)
		}
		e.target = day.Add(time.Duration(offset) * time.Second)

	case ModeFromDuration:
		seconds, err := timespec.ParseTimeSpec(e.cfg.TimeSpec)
		if err != nil {
			return fmt.Errorf("time spec %q: %w", e.cfg.TimeSpec, err)
		}
		e.duration = time.Duration(seconds) * time.Second
		e.cycleStart = now

	case ModeCountUp:
		e.cycleStart = now
	}

	return nil
}

// HandleKey applies one key press. Matching is case-insensitive; keys
// with no meaning in the current state are ignored.
func (e *Engine) HandleKey(r rune, now time.Time) Note {
	r = unicode.ToLower(r)

	if e.pending != PendingNone {
		switch r {
		case 'y':
			pending := e.pending
			e.pending = PendingNone
			if pending == PendingRestart {
				e.restartRequested = true
				return NoteRestartRequested
			}
			e.quitRequested = true
			return NoteQuitRequested
		case 'n':
			e.pending = PendingNone
			return NoteCancelled
		}
		return NoteNone
	}

	switch r {
	case 'r':
		e.pending = PendingRestart
		return NoteConfirmRestart

	case 'p':
		if e.paused {
			// Resume: fold the pause interval into the total in
			// one step so a tick never sees a half-applied pause.
			e.totalPaused += now.Sub(e.pauseStart)
			e.pauseStart = time.Time{}
			e.paused = false
			return NoteResumed
		}
		e.pauseStart = now
		e.paused = true
		return NotePaused

	case 'q':
		e.pending = PendingQuit
		return NoteConfirmQuit
	}

	return NoteNone
}

// Tick computes the display value for now. A countdown reaching zero
// publishes the formatted zero and ends the session; quit and restart
// are checked after the publish, mid-cycle values are never lost.
func (e *Engine) Tick(now time.Time) Step {
	// A paused countdown/count-up holds its value; nothing to
	// recompute or republish. The to-target mode is deliberately
	// exempt: its deadline is absolute and keeps approaching.
	if e.paused && e.cfg.Mode != ModeToTarget {
		return Step{}
	}

	var display int
	var complete bool

	switch e.cfg.Mode {
	case ModeToTarget:
		remaining := e.target.Sub(now)
		display = int(remaining / time.Second)
		complete = remaining <= 0

	case ModeFromDuration:
		elapsed := now.Sub(e.cycleStart) - e.totalPaused
		remaining := e.duration - elapsed
		display = int(remaining / time.Second)
		complete = remaining <= 0

	case ModeCountUp:
		elapsed := now.Sub(e.cycleStart) - e.totalPaused
		display = int(elapsed / time.Second)
	}

	if complete || display < 0 {
		display = 0
	}

	step := Step{
		Output:  format.Clock(display, e.cfg.Style),
		Seconds: display,
		Publish: true,
	}

	if complete {
		e.running = false
		step.CycleOver = true
		step.Completed = true
		return step
	}

	if e.quitRequested || e.restartRequested {
		step.CycleOver = true
	}
	return step
}

// EndCycle resolves a finished cycle and reports whether a new one
// should start. Quit ends the session; restart wins only when quit was
// not also requested.
func (e *Engine) EndCycle() bool {
	if e.quitRequested {
		e.running = false
	}
	return e.running && e.restartRequested
}
