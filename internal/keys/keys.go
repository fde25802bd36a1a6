// Package keys reads single key presses from a terminal for the plain
// (non-TUI) run mode. When stdin is not a terminal the capability is
// simply absent: the timer runs fine without key controls, it just
// cannot be paused, restarted or quit interactively.
package keys

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Available reports whether stdin can deliver key-level input.
func Available() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Reader owns the terminal's raw mode and forwards key runes on a
// channel until closed.
type Reader struct {
	fd    int
	state *term.State
	ch    chan rune
	done  chan struct{}
}

// Start switches stdin to raw mode and begins reading keys. Callers
// must Stop the reader to restore the terminal.
func Start() (*Reader, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	r := &Reader{
		fd:    fd,
		state: state,
		ch:    make(chan rune, 8),
		done:  make(chan struct{}),
	}
	go r.loop()
	return r, nil
}

// Keys returns the channel of key presses. Escape sequences (arrows,
// function keys) are swallowed so their payload bytes never masquerade
// as letter keys. Control characters are forwarded; the consumer
// decides what ctrl+c means.
func (r *Reader) Keys() <-chan rune {
	return r.ch
}

// Stop restores the terminal mode. The read goroutine exits on the
// next key press; its channel stays open but is no longer consumed.
func (r *Reader) Stop() error {
	close(r.done)
	return term.Restore(r.fd, r.state)
}

func (r *Reader) loop() {
	in := bufio.NewReader(os.Stdin)
	for {
		ch, _, err := in.ReadRune()
		if err != nil {
			close(r.ch)
			return
		}

		select {
		case <-r.done:
			return
		default:
		}

		if ch == 0x1b {
			skipEscape(in)
			continue
		}

		select {
		case r.ch <- ch:
		case <-r.done:
			return
		}
	}
}

// skipEscape consumes the remainder of a CSI/SS3 escape sequence so an
// arrow key's "[A" payload is not delivered as keys.
func skipEscape(in *bufio.Reader) {
	ch, _, err := in.ReadRune()
	if err != nil || (ch != '[' && ch != 'O') {
		return
	}
	for {
		ch, _, err = in.ReadRune()
		if err != nil {
			return
		}
		// Parameter bytes are digits and ';'; anything else is the
		// final byte of the sequence.
		if (ch < '0' || ch > '9') && ch != ';' {
			return
		}
	}
}
