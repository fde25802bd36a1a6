package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings != Default() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeSettings(t, `
output: /tmp/timer.txt
tick_interval_ms: 250
format: 2
theme: dracula
journal: false
journal_path: /tmp/sessions.db
`)

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if settings.Output != "/tmp/timer.txt" {
		t.Errorf("Output = %q", settings.Output)
	}
	if settings.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %v", settings.TickInterval)
	}
	if settings.DisplayFormat != 2 {
		t.Errorf("DisplayFormat = %d", settings.DisplayFormat)
	}
	if settings.Theme != "dracula" {
		t.Errorf("Theme = %q", settings.Theme)
	}
	if settings.Journal {
		t.Error("Journal should be disabled")
	}
	if settings.JournalPath != "/tmp/sessions.db" {
		t.Errorf("JournalPath = %q", settings.JournalPath)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeSettings(t, "theme: dracula\n")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defaults := Default()
	if settings.Theme != "dracula" {
		t.Errorf("Theme = %q", settings.Theme)
	}
	if settings.Output != defaults.Output || settings.TickInterval != defaults.TickInterval || !settings.Journal {
		t.Errorf("unset fields should keep defaults: %+v", settings)
	}
}

func TestLoadClampsTickInterval(t *testing.T) {
	path := writeSettings(t, "tick_interval_ms: 1\n")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.TickInterval != 10*time.Millisecond {
		t.Errorf("TickInterval = %v, want 10ms floor", settings.TickInterval)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeSettings(t, "output: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should be an error")
	}
}

func TestLoadIgnoresOutOfRangeFormat(t *testing.T) {
	path := writeSettings(t, "format: 7\n")
	settings, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.DisplayFormat != Default().DisplayFormat {
		t.Errorf("DisplayFormat = %d, want default", settings.DisplayFormat)
	}
}
