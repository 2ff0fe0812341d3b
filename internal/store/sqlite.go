package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Storage keys shared with the browser client.
const (
	KeyFavorites = "altus-favorites"
	KeyTheme     = "altus-theme"
)

// Store is flat key/value persistence for single-user UI state. Values are
// overwritten wholesale on every write; there is no concurrent-writer
// protection beyond what SQLite itself gives.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the value stored at key and whether it exists.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set replaces the value stored at key.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
