package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	log  zerolog.Logger
}

// Open creates a new database connection, creating the database on first run
func Open(dbPath string, logger zerolog.Logger) (*DB, error) {
	// First run: no database yet
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		if err := Initialize(dbPath); err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}
		logger.Info().Str("path", dbPath).Msg("created database")
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer, and sqlite serializes writers anyway
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, log: logger}

	// Run any pending migrations
	if err := db.RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Get returns the value stored under key and whether it exists
func (db *DB) Get(key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (db *DB) Set(key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := db.conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (db *DB) Delete(key string) error {
	if _, err := db.conn.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting key %q: %w", key, err)
	}
	return nil
}

// GetEntry retrieves a single entry by key
func (db *DB) GetEntry(key string) (*Entry, error) {
	var e Entry
	err := db.conn.QueryRow(`SELECT key, value, updated_at FROM kv WHERE key = ?`, key).
		Scan(&e.Key, &e.Value, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Keys returns every stored key, sorted
func (db *DB) Keys() ([]string, error) {
	rows, err := db.conn.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("querying keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
