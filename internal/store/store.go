// Package store persists the whole note collection and the theme
// preference as two blobs in a local SQLite file. The collection is always
// written and read as a unit; row-per-note layouts would promise more
// granularity than the Repository's write-through contract needs.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/marcus/scribble/internal/note"
)

const (
	keyNotes = "notes"
	keyTheme = "theme"
)

// Store handles SQLite operations for the note collection blob.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

// DefaultPath returns the default database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes.db"
	}
	return filepath.Join(home, ".local", "share", "scribble", "notes.db")
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL
);
`
	_, err := s.db.Exec(schema)
	return err
}

// LoadNotes reads the whole collection. A store that has never been written
// yields an empty collection, not an error.
func (s *Store) LoadNotes() ([]note.Note, error) {
	data, err := s.get(keyNotes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	var notes []note.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

// SaveNotes rewrites the whole collection blob.
func (s *Store) SaveNotes(notes []note.Note) error {
	if notes == nil {
		notes = []note.Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.put(keyNotes, data); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

// Theme returns the persisted theme name, or "" if none was saved.
func (s *Store) Theme() (string, error) {
	data, err := s.get(keyTheme)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	return string(data), nil
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(name string) error {
	if err := s.put(keyTheme, []byte(name)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (s *Store) get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	return value, err
}

func (s *Store) put(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
