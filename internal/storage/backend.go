package storage

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrUnknownBackend is returned when no factory is registered under a name
var ErrUnknownBackend = errors.New("unknown storage backend")

// ErrClosed is returned by operations on a closed backend
var ErrClosed = errors.New("storage backend closed")

// Backend is a local key-value store holding string values.
// Implementations are used by one writer at a time.
type Backend interface {
	// Name returns the backend identifier (e.g., "sqlite", "file")
	Name() string

	// Get returns the value under key and whether the key exists
	Get(key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Close releases any resources held by the backend
	Close() error
}

// Options carries the settings backends may need
type Options struct {
	Path string // sqlite database file
	Dir  string // directory for the file backend

	Logger zerolog.Logger
}

// Factory creates a backend, or fails when the backend cannot run with opts
type Factory func(opts Options) (Backend, error)
