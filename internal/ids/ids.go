// Package ids generates opaque unique task identifiers.
package ids

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Kinds accepted by New
const (
	KindXID  = "xid"
	KindUUID = "uuid"
)

// ErrUnknownKind is returned by New for an unsupported generator name
var ErrUnknownKind = errors.New("unknown id generator")

// Generator produces identifiers that do not repeat
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a plain function to Generator
type GeneratorFunc func() string

// NewID calls f
func (f GeneratorFunc) NewID() string {
	return f()
}

// XID generates globally unique, time-sortable ids
type XID struct{}

// NewID returns a new xid string
func (XID) NewID() string {
	return xid.New().String()
}

// UUID generates random v4 UUIDs
type UUID struct{}

// NewID returns a new UUID string
func (UUID) NewID() string {
	return uuid.NewString()
}

// New returns the generator registered under kind. An empty kind means xid.
func New(kind string) (Generator, error) {
	switch kind {
	case "", KindXID:
		return XID{}, nil
	case KindUUID:
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
