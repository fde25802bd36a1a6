package sink

import (
	"os"
	"path/filepath"
	"testing"
)

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(data)
}

func TestFileSinkOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "OUTPUT.txt")
	s := NewFileSink(path)

	if err := s.Publish("1:00:00"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := readOutput(t, path); got != "1:00:00" {
		t.Errorf("output = %q, want %q", got, "1:00:00")
	}

	// Shorter value must fully replace the longer one, not leave a tail.
	if err := s.Publish("5"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := readOutput(t, path); got != "5" {
		t.Errorf("output = %q, want %q", got, "5")
	}
}

func TestFileSinkSkipsRepeats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "OUTPUT.txt")
	s := NewFileSink(path)

	if err := s.Publish("42"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	// Remove the file behind the sink's back; a repeated publish
	// should be elided and not recreate it.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Publish("42"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("repeated publish should have been skipped")
	}

	if err := s.Publish("41"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := readOutput(t, path); got != "41" {
		t.Errorf("output = %q, want %q", got, "41")
	}
}

func TestFileSinkClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "OUTPUT.txt")
	s := NewFileSink(path)

	if err := s.Publish("3:00"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := readOutput(t, path); got != "" {
		t.Errorf("output after clear = %q, want empty", got)
	}
}

func TestFileSinkPublishError(t *testing.T) {
	s := NewFileSink(filepath.Join(t.TempDir(), "missing", "OUTPUT.txt"))
	if err := s.Publish("1"); err == nil {
		t.Error("publish into a missing directory should fail")
	}
}
