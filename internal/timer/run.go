package timer

import (
	"context"
	"time"

	"github.com/dori/obstick/internal/sink"
)

// DefaultInterval is the tick cadence: ten recomputes per second keeps
// the displayed second accurate without hammering the output file.
const DefaultInterval = 100 * time.Millisecond

// Runner drives an Engine at a fixed cadence without a TUI. Key events
// arrive over a channel and are applied between ticks, so the engine
// only ever runs on the runner's goroutine.
type Runner struct {
	Engine   *Engine
	Sink     sink.Sink
	Interval time.Duration

	// Keys delivers key presses from the input reader. A nil channel
	// means the host has no key capability; the run is then driven by
	// natural completion (or cancellation) alone.
	Keys <-chan rune

	// Optional callbacks. Notes receives key feedback, Echo receives
	// each newly published value (for the console mirror), and the
	// cycle hooks bracket every session cycle for journaling.
	Notes        func(Note)
	Echo         func(string)
	OnCycleStart func(started time.Time)
	OnCycleEnd   func(ended time.Time, pausedFor time.Duration, outcome Outcome)

	lastEcho string
	echoed   bool
}

// Run executes session cycles until quit, natural completion, a sink
// failure, or ctx cancellation. On cancellation the sink is cleared so
// the overlay does not keep showing a stale value.
func (r *Runner) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for r.Engine.Running() {
		started := time.Now()
		if err := r.Engine.StartCycle(started); err != nil {
			r.Sink.Clear()
			return err
		}
		if r.OnCycleStart != nil {
			r.OnCycleStart(started)
		}

		outcome, err := r.runCycle(ctx, ticker)

		if r.OnCycleEnd != nil {
			r.OnCycleEnd(time.Now(), r.Engine.TotalPaused(), outcome)
		}
		if err != nil {
			r.Sink.Clear()
			return err
		}
		if outcome == OutcomeInterrupted {
			r.Sink.Clear()
			return nil
		}
	}

	return nil
}

// runCycle runs one inner tick loop to its end and classifies how it
// ended. EndCycle is called here so the outcome and the engine's
// running flag stay consistent.
func (r *Runner) runCycle(ctx context.Context, ticker *time.Ticker) (Outcome, error) {
	for {
		select {
		case <-ctx.Done():
			return OutcomeInterrupted, nil

		case key, ok := <-r.Keys:
			if !ok {
				r.Keys = nil
				continue
			}
			note := r.Engine.HandleKey(key, time.Now())
			if note != NoteNone && r.Notes != nil {
				r.Notes(note)
			}

		case <-ticker.C:
			step := r.Engine.Tick(time.Now())
			if step.Publish {
				if err := r.Sink.Publish(step.Output); err != nil {
					return "", err
				}
				r.echo(step.Output)
			}
			if !step.CycleOver {
				continue
			}

			restart := r.Engine.EndCycle()
			switch {
			case step.Completed:
				return OutcomeCompleted, nil
			case restart:
				return OutcomeRestarted, nil
			default:
				return OutcomeQuit, nil
			}
		}
	}
}

func (r *Runner) echo(out string) {
	if r.Echo == nil {
		return
	}
	if r.echoed && out == r.lastEcho {
		return
	}
	r.lastEcho = out
	r.echoed = true
	r.Echo(out)
}
