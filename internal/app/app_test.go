package app

import (
	"path/filepath"
	"testing"

	"github.com/dori/obstick/internal/config"
)

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	dir := t.TempDir()
	settings := config.Default()
	settings.Output = filepath.Join(dir, "OUTPUT.txt")
	settings.JournalPath = filepath.Join(dir, "sessions.db")
	return settings
}

func TestNewAndClose(t *testing.T) {
	a, err := New(testSettings(t))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Sink == nil || a.Journal == nil || a.Notifier == nil {
		t.Error("app should wire sink, journal and notifier")
	}
	if err := a.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestJournalDisabled(t *testing.T) {
	settings := testSettings(t)
	settings.Journal = false

	a, err := New(settings)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer a.Close()

	if a.Journal != nil {
		t.Error("journal should be nil when disabled")
	}
}

func TestSecondInstanceRejected(t *testing.T) {
	settings := testSettings(t)

	first, err := New(settings)
	if err != nil {
		t.Fatalf("first instance: %v", err)
	}
	defer first.Close()

	if _, err := New(settings); err == nil {
		t.Fatal("second instance on the same output file should fail")
	}

	// A different output file is a different timer; that is fine.
	other := settings
	other.Output = filepath.Join(t.TempDir(), "OTHER.txt")
	other.Journal = false
	second, err := New(other)
	if err != nil {
		t.Fatalf("instance on another output: %v", err)
	}
	second.Close()
}
