package app

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/dori/obstick/internal/config"
	"github.com/dori/obstick/internal/journal"
	"github.com/dori/obstick/internal/notify"
	"github.com/dori/obstick/internal/sink"
)

// App holds the application state and dependencies
type App struct {
	Settings config.Settings
	Sink     *sink.FileSink
	Journal  *journal.Journal // nil when journaling is disabled
	Notifier *notify.Notifier
	lockFile *flock.Flock
}

// New creates a new application instance
func New(settings config.Settings) (*App, error) {
	app := &App{
		Settings: settings,
		Notifier: notify.NewNotifier(),
	}

	// Lock the output file against a second instance: two timers
	// overwriting the same text source would flicker between values.
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	app.Sink = sink.NewFileSink(settings.Output)

	if settings.Journal {
		path := settings.JournalPath
		if path == "" {
			path = journal.DefaultPath()
		}
		j, err := journal.Open(path)
		if err != nil {
			app.releaseLock()
			return nil, fmt.Errorf("open session journal: %w", err)
		}
		app.Journal = j
	}

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Settings.Output + ".lock")

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another timer is already writing to %s", a.Settings.Output)
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.Journal != nil {
		if err := a.Journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close session journal: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
