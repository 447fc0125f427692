package tasks

import (
	"fmt"

	"github.com/pdxmph/chores-tui/internal/storage"
)

// StorageKey is the fixed slot holding the serialized task list
const StorageKey = "tasks"

// Store persists the whole task list in one storage slot
type Store interface {
	// Load returns the persisted list, or an empty list if nothing is stored.
	// On error the returned list is still usable (possibly empty).
	Load() ([]Task, error)

	// SaveAll overwrites the slot with tasks
	SaveAll(tasks []Task) error

	// Clear removes the slot entirely
	Clear() error
}

// KVStore implements Store on a key-value storage backend
type KVStore struct {
	backend storage.Backend
	key     string
}

// NewKVStore creates a store using StorageKey on backend
func NewKVStore(backend storage.Backend) *KVStore {
	return &KVStore{backend: backend, key: StorageKey}
}

// Load reads and decodes the task list
func (s *KVStore) Load() ([]Task, error) {
	raw, ok, err := s.backend.Get(s.key)
	if err != nil {
		return []Task{}, fmt.Errorf("reading task list: %w", err)
	}
	if !ok {
		return []Task{}, nil
	}
	return Decode(raw)
}

// SaveAll encodes and writes the task list
func (s *KVStore) SaveAll(list []Task) error {
	raw, err := Encode(list)
	if err != nil {
		return err
	}
	if err := s.backend.Set(s.key, raw); err != nil {
		return fmt.Errorf("saving task list: %w", err)
	}
	return nil
}

// Clear removes the stored task list
func (s *KVStore) Clear() error {
	if err := s.backend.Remove(s.key); err != nil {
		return fmt.Errorf("clearing task list: %w", err)
	}
	return nil
}
