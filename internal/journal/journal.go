// Package journal records finished timer cycles in a local SQLite
// database. It is history only: nothing in here feeds state back into
// a running timer.
package journal

import (
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/dori/obstick/internal/timer"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Journal wraps the session database.
type Journal struct {
	db *sql.DB
}

// Session is one recorded timer cycle.
type Session struct {
	ID            string
	Mode          string
	TimeSpec      string
	DateSpec      string
	Style         string
	StartedAt     time.Time
	EndedAt       *time.Time
	PausedSeconds int
	Outcome       string
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".obstick"
	}
	return filepath.Join(home, ".local", "share", "obstick")
}

// DefaultPath returns the default journal database file path
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "obstick.db")
}

// Open opens the journal database and runs migrations.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to journal database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run journal migrations: %w", err)
	}

	return &Journal{db: db}, nil
}

func migrate(db *sql.DB) error {
	// Goose logs to stdout by default, which would corrupt the
	// in-place console display.
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return goose.Up(db, "migrations")
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// StartSession records the beginning of a cycle and returns its id.
func (j *Journal) StartSession(cfg timer.Config, startedAt time.Time) (string, error) {
	id := uuid.New().String()
	_, err := j.db.Exec(`
		INSERT INTO sessions (id, mode, time_spec, date_spec, style, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, cfg.Mode.String(), cfg.TimeSpec, cfg.DateSpec, cfg.Style.String(), startedAt)
	if err != nil {
		return "", fmt.Errorf("record session start: %w", err)
	}
	return id, nil
}

// EndSession closes a cycle record with its outcome and pause total.
func (j *Journal) EndSession(id string, endedAt time.Time, paused time.Duration, outcome timer.Outcome) error {
	_, err := j.db.Exec(`
		UPDATE sessions
		SET ended_at = ?, paused_seconds = ?, outcome = ?
		WHERE id = ?
	`, endedAt, int(paused.Seconds()), string(outcome), id)
	if err != nil {
		return fmt.Errorf("record session end: %w", err)
	}
	return nil
}

// Recent returns the most recently started sessions, newest first.
func (j *Journal) Recent(limit int) ([]Session, error) {
	rows, err := j.db.Query(`
		SELECT id, mode, time_spec, date_spec, style, started_at, ended_at, paused_seconds, outcome
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Mode, &s.TimeSpec, &s.DateSpec, &s.Style,
			&s.StartedAt, &s.EndedAt, &s.PausedSeconds, &s.Outcome); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
