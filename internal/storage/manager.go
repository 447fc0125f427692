package storage

import (
	"errors"
	"fmt"
)

// Preference is the order tried when no backend is named
var Preference = []string{"sqlite", "file", "memory"}

// Open creates the named backend from the global registry.
// If name is empty, it tries Preference in order and returns the first
// backend that opens.
func Open(name string, opts Options) (Backend, error) {
	return defaultRegistry.Open(name, opts)
}

// Open is the registry-scoped form of the package-level Open
func (r *Registry) Open(name string, opts Options) (Backend, error) {
	if name != "" {
		backend, err := r.Create(name, opts)
		if err != nil {
			return nil, fmt.Errorf("creating backend %s: %w", name, err)
		}
		return backend, nil
	}

	var errs []error
	for _, candidate := range Preference {
		backend, err := r.Create(candidate, opts)
		if err != nil {
			opts.Logger.Warn().Err(err).Str("backend", candidate).Msg("storage backend unavailable")
			errs = append(errs, err)
			continue
		}
		if candidate == "memory" {
			opts.Logger.Warn().Msg("falling back to in-memory storage; tasks will not survive a restart")
		}
		return backend, nil
	}

	return nil, fmt.Errorf("no storage backend available: %w", errors.Join(errs...))
}
