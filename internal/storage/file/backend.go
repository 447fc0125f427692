// Package file stores each key as a JSON document in a directory.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/pdxmph/chores-tui/internal/storage"
)

// document is the on-disk shape of one entry
type document struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Backend implements storage.Backend with one file per key
type Backend struct {
	dir string
}

// NewBackend uses dir for storage, creating it if needed
func NewBackend(dir string) (*Backend, error) {
	if dir == "" {
		return nil, fmt.Errorf("file backend needs a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Name returns the backend identifier
func (b *Backend) Name() string {
	return "file"
}

// Get returns the value under key
func (b *Backend) Get(key string) (string, bool, error) {
	path, err := b.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %q: %w", key, err)
	}

	var doc document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return "", false, fmt.Errorf("parsing document for key %q: %w", key, err)
	}
	return doc.Value, true, nil
}

// Set writes value under key. The write is atomic: readers see the old or
// the new document, never a partial one.
func (b *Backend) Set(key, value string) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}

	data, err := sonic.Marshal(document{Key: key, Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encoding document for key %q: %w", key, err)
	}

	tmp, err := os.CreateTemp(b.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing key %q: %w", key, err)
	}
	return nil
}

// Remove deletes key
func (b *Backend) Remove(key string) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing key %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; nothing is held open between calls
func (b *Backend) Close() error {
	return nil
}

func (b *Backend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(b.dir, key+".json"), nil
}

// Register the file backend
func init() {
	storage.Register("file", func(opts storage.Options) (storage.Backend, error) {
		return NewBackend(opts.Dir)
	})
}
