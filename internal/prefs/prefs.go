// Package prefs persists user settings between sessions in a small SQLite
// database.
package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/varnamala/internal/alphabet"
)

// Settings is everything the application remembers between runs.
type Settings struct {
	Rate   int                 // speech rate in words per minute
	Mode   alphabet.FilterMode // last active filter
	Cursor int                 // last cursor position in the full alphabet
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{Rate: 150, Mode: alphabet.ModeBoth, Cursor: 0}
}

const (
	keyRate   = "rate"
	keyMode   = "mode"
	keyCursor = "cursor"
)

// Store reads and writes settings as key/value rows.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the settings database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS prefs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create prefs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Load reads settings, filling any missing key from the defaults.
func (s *Store) Load() (Settings, error) {
	settings := DefaultSettings()

	if v, ok, err := s.get(keyRate); err != nil {
		return settings, err
	} else if ok {
		if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
			settings.Rate = rate
		}
	}

	if v, ok, err := s.get(keyMode); err != nil {
		return settings, err
	} else if ok {
		if mode, err := alphabet.ParseFilterMode(v); err == nil {
			settings.Mode = mode
		}
	}

	if v, ok, err := s.get(keyCursor); err != nil {
		return settings, err
	} else if ok {
		if cursor, err := strconv.Atoi(v); err == nil && cursor >= 0 {
			settings.Cursor = cursor
		}
	}

	return settings, nil
}

// Save writes all settings.
func (s *Store) Save(settings Settings) error {
	if err := s.set(keyRate, strconv.Itoa(settings.Rate)); err != nil {
		return err
	}
	if err := s.set(keyMode, settings.Mode.String()); err != nil {
		return err
	}
	return s.set(keyCursor, strconv.Itoa(settings.Cursor))
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// DefaultPath returns the per-user settings database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "varnamala", "prefs.db"), nil
}
