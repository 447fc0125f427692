// Package sqlite stores key-value pairs in a local sqlite database.
package sqlite

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdxmph/chores-tui/internal/db"
	"github.com/pdxmph/chores-tui/internal/storage"
)

// Backend implements storage.Backend on top of the kv table
type Backend struct {
	db *db.DB
}

// NewBackend opens (or creates) the database at path
func NewBackend(path string, logger zerolog.Logger) (*Backend, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite backend needs a database path")
	}

	database, err := db.Open(path, logger)
	if err != nil {
		return nil, err
	}

	logSlots(database, logger)
	return &Backend{db: database}, nil
}

// logSlots reports what the database already holds, at debug level
func logSlots(database *db.DB, logger zerolog.Logger) {
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}

	keys, err := database.Keys()
	if err != nil {
		logger.Warn().Err(err).Msg("listing stored slots")
		return
	}
	for _, key := range keys {
		entry, err := database.GetEntry(key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("reading stored slot")
			continue
		}
		logger.Debug().
			Str("key", entry.Key).
			Int("bytes", len(entry.Value)).
			Dur("age", entry.Age()).
			Msg("stored slot")
	}
}

// Name returns the backend identifier
func (b *Backend) Name() string {
	return "sqlite"
}

// Get returns the value under key
func (b *Backend) Get(key string) (string, bool, error) {
	return b.db.Get(key)
}

// Set stores value under key
func (b *Backend) Set(key, value string) error {
	return b.db.Set(key, value)
}

// Remove deletes key
func (b *Backend) Remove(key string) error {
	return b.db.Delete(key)
}

// Close closes the database
func (b *Backend) Close() error {
	return b.db.Close()
}

// Register the sqlite backend
func init() {
	storage.Register("sqlite", func(opts storage.Options) (storage.Backend, error) {
		return NewBackend(opts.Path, opts.Logger)
	})
}
