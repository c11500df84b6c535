package session

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Keys written to session storage. The task store owns "tasks", the
// notification scheduler owns "lastNotificationTime", the session owns
// "userSession"; nothing else writes here.
const (
	KeyTasks            = "tasks"
	KeyUserSession      = "userSession"
	KeyLastNotification = "lastNotificationTime"
)

// Storage is the session-scoped key/value store. Values are JSON (or an
// ISO-8601 timestamp for the notification key) kept in a single SQLite
// table so the whole session lives in one file.
type Storage struct {
	db *sql.DB
}

// Open connects to the session database at the given path, creating the
// file and schema if they don't exist
func Open(path string) (*Storage, error) {
	// Expand tilde to home directory if present
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = homeDir + path[1:]
	}

	// Create the directory structure if it doesn't exist
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	return err
}

// Get returns the value stored under key. The second result reports
// whether the key was present.
func (s *Storage) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session_store WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *Storage) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO session_store (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (s *Storage) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM session_store WHERE key = ?`, key)
	return err
}

// Close closes the underlying database
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
