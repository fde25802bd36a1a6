// Package sink delivers the formatted clock string to whatever is
// displaying it. The primary sink is a single text file that broadcast
// software reads as a text source; every publish overwrites the whole
// file.
package sink

import (
	"fmt"
	"os"
	"sync"
)

// Sink receives one formatted clock string per publish.
type Sink interface {
	// Publish replaces the displayed value.
	Publish(text string) error
	// Clear blanks the displayed value. Used on shutdown so the
	// overlay does not keep showing a stale time.
	Clear() error
}

// FileSink writes the value to a single file, replacing the previous
// contents on every publish.
type FileSink struct {
	path string

	mu   sync.Mutex
	last string
	has  bool
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the output file path.
func (s *FileSink) Path() string {
	return s.path
}

// Publish overwrites the output file with text. Repeats of the last
// published value are skipped; at ten ticks per second the value only
// changes once a second, so this drops ~90% of the writes.
func (s *FileSink) Publish(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has && s.last == text {
		return nil
	}

	if err := os.WriteFile(s.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	s.last = text
	s.has = true
	return nil
}

// Clear blanks the output file.
func (s *FileSink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, nil, 0o644); err != nil {
		return fmt.Errorf("clear output file: %w", err)
	}

	s.last = ""
	s.has = true
	return nil
}
