// Package config loads the optional settings file. Every value has a
// default and the file's absence is not an error; command-line flags
// override whatever is loaded here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "config.yaml"

// Settings are the resolved process settings.
type Settings struct {
	// Output is the file the formatted time is written to.
	Output string
	// TickInterval is the recompute/republish cadence.
	TickInterval time.Duration
	// DisplayFormat is the default display style (0, 1 or 2).
	DisplayFormat int
	// Theme names the display palette for the interactive view.
	Theme string
	// Journal enables the session journal database.
	Journal bool
	// JournalPath overrides the journal location. Empty means the
	// default data directory.
	JournalPath string
}

type yamlSettings struct {
	Output         string `yaml:"output"`
	TickIntervalMS int    `yaml:"tick_interval_ms"`
	Format         *int   `yaml:"format"`
	Theme          string `yaml:"theme"`
	Journal        *bool  `yaml:"journal"`
	JournalPath    string `yaml:"journal_path"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Output:        "OUTPUT.txt",
		TickInterval:  100 * time.Millisecond,
		DisplayFormat: 0,
		Theme:         "nord",
		Journal:       true,
	}
}

// DefaultPath returns the default settings file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".obstick", settingsFileName)
	}
	return filepath.Join(base, "obstick", settingsFileName)
}

// Load reads settings from path, falling back to defaults for missing
// values. A missing file returns the defaults.
func Load(path string) (Settings, error) {
	settings := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	apply(&settings, fileData)
	return settings, nil
}

func apply(settings *Settings, fileData yamlSettings) {
	if fileData.Output != "" {
		settings.Output = fileData.Output
	}
	if fileData.TickIntervalMS > 0 {
		interval := time.Duration(fileData.TickIntervalMS) * time.Millisecond
		// Below 10ms the loop is pure overhead: the display has
		// whole-second resolution.
		if interval < 10*time.Millisecond {
			interval = 10 * time.Millisecond
		}
		settings.TickInterval = interval
	}
	if fileData.Format != nil && *fileData.Format >= 0 && *fileData.Format <= 2 {
		settings.DisplayFormat = *fileData.Format
	}
	if fileData.Theme != "" {
		settings.Theme = fileData.Theme
	}
	if fileData.Journal != nil {
		settings.Journal = *fileData.Journal
	}
	if fileData.JournalPath != "" {
		settings.JournalPath = fileData.JournalPath
	}
}
