package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const librarySchema = `
CREATE TABLE IF NOT EXISTS libraries (
	user_id    TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore persists library data in a single SQLite database. Each
// user's five collections live in one JSON payload row, so every save
// replaces all collections in one statement.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at dsn and
// applies recommended pragmas.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(librarySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, userID string) (Data, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM libraries WHERE user_id = ?", userID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Data{}, nil
	}
	if err != nil {
		return Data{}, fmt.Errorf("load library: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return Data{}, fmt.Errorf("decode library payload: %w", err)
	}
	return data, nil
}

func (s *SQLiteStore) Save(ctx context.Context, userID string, data Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode library payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO libraries (user_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		userID, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. STUDIUM_DB environment variable
// 2. $XDG_DATA_HOME/studium/studium.db
// 3. ~/.local/share/studium/studium.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STUDIUM_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "studium", "studium.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
