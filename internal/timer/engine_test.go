package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/dori/obstick/internal/format"
	"github.com/dori/obstick/internal/timespec"
)

var t0 = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e := New(cfg)
	if err := e.StartCycle(t0); err != nil {
		t.Fatalf("StartCycle: %v", err)
	}
	return e
}

func TestCountdownSequence(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeFromDuration, TimeSpec: "5", Style: format.StyleShort})

	var outputs []string
	now := t0
	for i := 0; i < 60; i++ {
		step := e.Tick(now)
		if step.Publish {
			if len(outputs) == 0 || outputs[len(outputs)-1] != step.Output {
				outputs = append(outputs, step.Output)
			}
		}
		if step.CycleOver {
			if !step.Completed {
				t.Fatal("cycle should end by completion")
			}
			break
		}
		now = now.Add(100 * time.Millisecond)
	}

	want := []string{"5", "4", "3", "2", "1", "0"}
	if len(outputs) != len(want) {
		t.Fatalf("outputs = %v, want %v", outputs, want)
	}
	for i := range want {
		if outputs[i] != want[i] {
			t.Fatalf("outputs = %v, want %v", outputs, want)
		}
	}

	if e.Running() {
		t.Error("engine should stop running after natural completion")
	}
	if e.EndCycle() {
		t.Error("natural completion must not restart")
	}
}

func TestCountUpIsNonDecreasingFullStyle(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeCountUp, Style: format.StyleFull})

	prev := ""
	now := t0
	for i := 0; i < 500; i++ {
		step := e.Tick(now)
		if !step.Publish {
			t.Fatal("count-up should publish every tick")
		}
		if step.CycleOver {
			t.Fatal("count-up has no natural completion")
		}
		if len(step.Output) != 8 {
			t.Fatalf("output %q is not HH:MM:SS", step.Output)
		}
		if step.Output < prev {
			t.Fatalf("output went backwards: %q after %q", step.Output, prev)
		}
		prev = step.Output
		now = now.Add(100 * time.Millisecond)
	}

	if first := e.Tick(t0).Output; first != "00:00:00" {
		t.Errorf("count-up at start = %q, want 00:00:00", first)
	}
}

func TestToTargetCountdown(t *testing.T) {
	// Target is today 12:00:10 local; cycle starts at 12:00:00.
	e := New(Config{Mode: ModeToTarget, TimeSpec: "12:00:10", DateSpec: "", Style: format.StyleShort})
	if err := e.StartCycle(t0); err != nil {
		t.Fatalf("StartCycle: %v", err)
	}

	if got := e.Tick(t0).Output; got != "10" {
		t.Errorf("remaining at start = %q, want 10", got)
	}

	step := e.Tick(t0.Add(10 * time.Second))
	if step.Output != "0" || !step.Completed {
		t.Errorf("at target: output=%q completed=%v, want 0/true", step.Output, step.Completed)
	}
	if e.Running() {
		t.Error("engine should stop at target")
	}
}

func TestToTargetPastTargetCompletesImmediately(t *testing.T) {
	e := New(Config{Mode: ModeToTarget, TimeSpec: "0", DateSpec: "", Style: format.StyleFull})
	if err := e.StartCycle(t0); err != nil {
		t.Fatalf("StartCycle: %v", err)
	}

	step := e.Tick(t0)
	if !step.Completed || step.Output != "00:00:00" {
		t.Errorf("past-target tick = %+v, want completed formatted zero", step)
	}
}

func TestPauseAccounting(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeFromDuration, TimeSpec: "1:00", Style: format.StylePadded})

	// Run 10s, pause 30s, resume.
	if note := e.HandleKey('p', t0.Add(10*time.Second)); note != NotePaused {
		t.Fatalf("pause note = %v", note)
	}
	if !e.Paused() {
		t.Fatal("engine should be paused")
	}

	// Paused ticks neither publish nor advance.
	step := e.Tick(t0.Add(25 * time.Second))
	if step.Publish || step.CycleOver {
		t.Errorf("paused tick = %+v, want inert", step)
	}

	if note := e.HandleKey('p', t0.Add(40*time.Second)); note != NoteResumed {
		t.Fatalf("resume note = %v", note)
	}
	if got, want := e.TotalPaused(), 30*time.Second; got != want {
		t.Errorf("TotalPaused = %v, want %v", got, want)
	}

	// 50s after start with 30s paused: 20s elapsed, 40s remaining.
	if got := e.Tick(t0.Add(50 * time.Second)).Output; got != "40" {
		t.Errorf("after resume = %q, want 40", got)
	}
}

func TestPauseIsCaseInsensitiveToggle(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeFromDuration, TimeSpec: "30"})

	e.HandleKey('P', t0.Add(time.Second))
	if !e.Paused() {
		t.Fatal("upper-case P should pause")
	}
	e.HandleKey('P', t0.Add(3*time.Second))
	if e.Paused() {
		t.Fatal("upper-case P should resume")
	}
	if got, want := e.TotalPaused(), 2*time.Second; got != want {
		t.Errorf("TotalPaused = %v, want %v", got, want)
	}
}

// The to-target deadline is absolute: pausing changes nothing about the
// computed remainder. This is intentional, not a missing feature.
func TestToTargetIgnoresPause(t *testing.T) {
	e := New(Config{Mode: ModeToTarget, TimeSpec: "12:01:00", DateSpec: "", Style: format.StyleShort})
	if err := e.StartCycle(t0); err != nil {
		t.Fatalf("StartCycle: %v", err)
	}

	e.HandleKey('p', t0.Add(5*time.Second))
	step := e.Tick(t0.Add(20 * time.Second))
	if !step.Publish {
		t.Fatal("to-target must keep publishing while 'paused'")
	}
	if step.Output != "40" {
		t.Errorf("remaining = %q, want 40 (wall clock only)", step.Output)
	}
}

func TestConfirmationGating(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeCountUp})

	if note := e.HandleKey('r', t0); note != NoteConfirmRestart {
		t.Fatalf("r note = %v", note)
	}
	if e.Pending() != PendingRestart {
		t.Fatal("restart confirmation should be pending")
	}

	// Anything but y/n is ignored while confirming; the pending
	// action stays armed and pause must not fire.
	for _, r := range []rune{'p', 'q', 'r', 'x', ' '} {
		if note := e.HandleKey(r, t0); note != NoteNone {
			t.Errorf("key %q during confirm gave note %v", r, note)
		}
	}
	if e.Pending() != PendingRestart || e.Paused() || e.RestartRequested() {
		t.Fatal("confirmation gate leaked")
	}

	if note := e.HandleKey('n', t0); note != NoteCancelled {
		t.Fatalf("n note = %v", note)
	}
	if e.Pending() != PendingNone || e.RestartRequested() {
		t.Fatal("n should cancel with no side effect")
	}

	e.HandleKey('r', t0)
	if note := e.HandleKey('y', t0); note != NoteRestartRequested {
		t.Fatalf("y note = %v", note)
	}
	if !e.RestartRequested() || e.Pending() != PendingNone {
		t.Fatal("y should latch the restart request")
	}
}

func TestQuitConfirmation(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeCountUp})

	e.HandleKey('q', t0)
	if e.Pending() != PendingQuit {
		t.Fatal("quit confirmation should be pending")
	}
	e.HandleKey('Y', t0)
	if !e.QuitRequested() {
		t.Fatal("Y should latch the quit request")
	}

	step := e.Tick(t0.Add(time.Second))
	if !step.Publish || !step.CycleOver {
		t.Errorf("tick after quit = %+v, want publish then cycle end", step)
	}
	if e.EndCycle() {
		t.Error("quit must not restart")
	}
	if e.Running() {
		t.Error("quit should stop the session")
	}
}

func TestRestartResetsCycleState(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeFromDuration, TimeSpec: "10"})

	e.HandleKey('p', t0.Add(time.Second))
	e.HandleKey('p', t0.Add(4*time.Second))
	e.HandleKey('r', t0.Add(5*time.Second))
	e.HandleKey('y', t0.Add(5*time.Second))

	if !e.EndCycle() {
		t.Fatal("confirmed restart should start a new cycle")
	}

	restartAt := t0.Add(6 * time.Second)
	if err := e.StartCycle(restartAt); err != nil {
		t.Fatalf("StartCycle: %v", err)
	}
	if e.TotalPaused() != 0 || e.Paused() || e.RestartRequested() {
		t.Error("per-cycle state should reset on restart")
	}
	if got := e.Tick(restartAt).Output; got != "10" {
		t.Errorf("restarted countdown = %q, want 10", got)
	}
}

func TestQuitBeatsRestart(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeCountUp})

	e.HandleKey('r', t0)
	e.HandleKey('y', t0)
	e.HandleKey('q', t0)
	e.HandleKey('y', t0)

	if e.EndCycle() {
		t.Error("quit should win over a pending restart")
	}
	if e.Running() {
		t.Error("session should be over")
	}
}

func TestIgnoredKeys(t *testing.T) {
	e := newEngine(t, Config{Mode: ModeCountUp})

	for _, r := range []rune{'x', 'z', '1', ' ', '\n', 'é'} {
		if note := e.HandleKey(r, t0); note != NoteNone {
			t.Errorf("key %q gave note %v, want none", r, note)
		}
	}
	if e.Paused() || e.Pending() != PendingNone {
		t.Error("unmapped keys must not change state")
	}
}

func TestStartCycleBadSpecIsFatal(t *testing.T) {
	e := New(Config{Mode: ModeFromDuration, TimeSpec: "1:99"})
	err := e.StartCycle(t0)
	if !errors.Is(err, timespec.ErrInvalidFormat) {
		t.Errorf("StartCycle error = %v, want ErrInvalidFormat", err)
	}
}

func TestParseMode(t *testing.T) {
	for n := 0; n <= 2; n++ {
		mode, ok := ParseMode(n)
		if !ok || int(mode) != n {
			t.Errorf("ParseMode(%d) = %v, %v", n, mode, ok)
		}
	}
	if _, ok := ParseMode(3); ok {
		t.Error("ParseMode(3) should be rejected")
	}
}
