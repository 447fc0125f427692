package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndCreate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("memory", func(Options) (Backend, error) { return NewMemoryBackend(), nil }))

	err := r.Register("memory", func(Options) (Backend, error) { return nil, nil })
	assert.Error(t, err)

	b, err := r.Create("memory", Options{})
	require.NoError(t, err)
	assert.Equal(t, "memory", b.Name())

	_, err = r.Create("cloud", Options{})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("zeta", func(Options) (Backend, error) { return nil, nil }))
	require.NoError(t, r.Register("alpha", func(Options) (Backend, error) { return nil, nil }))
	assert.Equal(t, []string{"alpha", "zeta"}, r.List())
}

func TestDefaultRegistryHasMemory(t *testing.T) {
	assert.Contains(t, List(), "memory")
}

func TestOpenNamedBackend(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("broken", func(Options) (Backend, error) {
		return nil, errors.New("disk on fire")
	}))

	_, err := r.Open("broken", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestOpenWalksPreference(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("sqlite", func(Options) (Backend, error) {
		return nil, errors.New("no cgo")
	}))
	require.NoError(t, r.Register("memory", func(Options) (Backend, error) { return NewMemoryBackend(), nil }))

	// "file" is not registered here, so it is skipped as unknown
	b, err := r.Open("", Options{})
	require.NoError(t, err)
	assert.Equal(t, "memory", b.Name())
}

func TestOpenFailsWhenNothingOpens(t *testing.T) {
	r := NewRegistry()
	_, err := r.Open("", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestMemoryBackend(t *testing.T) {
	m := NewMemoryBackend()

	_, ok, err := m.Get("tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("tasks", "v1"))
	require.NoError(t, m.Set("tasks", "v2"))
	v, ok, err := m.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, m.Remove("tasks"))
	require.NoError(t, m.Remove("tasks"))
	_, ok, _ = m.Get("tasks")
	assert.False(t, ok)

	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Set("tasks", "v3"), ErrClosed)
	_, _, err = m.Get("tasks")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Remove("tasks"), ErrClosed)
}
