package adapters

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // CGO-free SQLite
)

// SQLiteStorageAdapter persists session identifiers in a SQLite database.
// Suited to long-lived hosts (kiosks, webview shells) where the session
// should survive process restarts.
type SQLiteStorageAdapter struct {
	db *sql.DB
}

// Ensure SQLiteStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*SQLiteStorageAdapter)(nil)

// NewSQLiteStorageAdapter opens (or creates) the database at databasePath
// and ensures the session table exists.
func NewSQLiteStorageAdapter(databasePath string) (*SQLiteStorageAdapter, error) {
	// WAL + busy timeout to avoid "database is locked"
	db, err := sql.Open("sqlite", databasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS session_values(
	  key   TEXT PRIMARY KEY,
	  value TEXT NOT NULL
	);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}

	return &SQLiteStorageAdapter{db: db}, nil
}

// Get retrieves the value stored under key, "" when absent.
func (s *SQLiteStorageAdapter) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session_values WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session value: %w", err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteStorageAdapter) Set(key string, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO session_values(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write session value: %w", err)
	}
	return nil
}

// Clear removes all stored values.
func (s *SQLiteStorageAdapter) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session_values`)
	if err != nil {
		return fmt.Errorf("failed to clear session values: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStorageAdapter) Close() error {
	return s.db.Close()
}
