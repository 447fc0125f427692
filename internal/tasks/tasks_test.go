package tasks

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/chores-tui/internal/storage"
	"github.com/pdxmph/chores-tui/internal/storage/file"
	"github.com/pdxmph/chores-tui/internal/storage/sqlite"
)

func TestNew(t *testing.T) {
	task, err := New("1", "  Wash dishes \n")
	require.NoError(t, err)
	assert.Equal(t, Task{ID: "1", Text: "Wash dishes"}, task)

	_, err = New("2", " \t ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = New("", "Buy milk")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestEncodeUsesIDAndTextFields(t *testing.T) {
	raw, err := Encode([]Task{{ID: "a", Text: "Sweep"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","text":"Sweep"}]`, raw)

	raw, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []Task
		wantErr error
	}{
		{
			name: "valid",
			raw:  `[{"id":"a","text":"Sweep"},{"id":"b","text":"Mop"}]`,
			want: []Task{{ID: "a", Text: "Sweep"}, {ID: "b", Text: "Mop"}},
		},
		{
			name: "null",
			raw:  `null`,
			want: []Task{},
		},
		{
			name: "unknown fields ignored",
			raw:  `[{"id":"a","text":"Sweep","done":true}]`,
			want: []Task{{ID: "a", Text: "Sweep"}},
		},
		{
			name:    "malformed",
			raw:     `[{"id":"a",`,
			want:    []Task{},
			wantErr: ErrCorrupt,
		},
		{
			name:    "wrong shape",
			raw:     `{"id":"a"}`,
			want:    []Task{},
			wantErr: ErrCorrupt,
		},
		{
			name:    "invalid entries dropped",
			raw:     `[{"id":"a","text":" Sweep "},{"id":"","text":"x"},{"id":"b","text":"  "},{"id":"a","text":"dup"}]`,
			want:    []Task{{ID: "a", Text: "Sweep"}},
			wantErr: ErrInvalidEntries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func backends(t *testing.T) map[string]func() storage.Backend {
	sqlitePath := filepath.Join(t.TempDir(), "chores.db")
	fileDir := filepath.Join(t.TempDir(), "data")
	mem := storage.NewMemoryBackend()

	return map[string]func() storage.Backend{
		"memory": func() storage.Backend { return mem },
		"sqlite": func() storage.Backend {
			b, err := sqlite.NewBackend(sqlitePath, zerolog.Nop())
			require.NoError(t, err)
			return b
		},
		"file": func() storage.Backend {
			b, err := file.NewBackend(fileDir)
			require.NoError(t, err)
			return b
		},
	}
}

// Each open() simulates an application restart on the same storage.
func TestKVStoreRoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			list := []Task{
				{ID: "1", Text: "Wash dishes"},
				{ID: "2", Text: "Buy milk"},
				{ID: "3", Text: "Água nas plantas"},
			}

			first := open()
			store := NewKVStore(first)
			require.NoError(t, store.SaveAll(list))
			if name != "memory" {
				require.NoError(t, first.Close())
			}

			restarted := NewKVStore(open())
			got, err := restarted.Load()
			require.NoError(t, err)
			assert.Equal(t, list, got)
		})
	}
}

func TestKVStoreLoadEmpty(t *testing.T) {
	store := NewKVStore(storage.NewMemoryBackend())
	got, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestKVStoreClear(t *testing.T) {
	backend := storage.NewMemoryBackend()
	store := NewKVStore(backend)

	require.NoError(t, store.SaveAll([]Task{{ID: "1", Text: "Sweep"}}))
	require.NoError(t, store.Clear())

	_, ok, err := backend.Get(StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKVStoreLoadCorrupt(t *testing.T) {
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Set(StorageKey, "not json"))

	got, err := NewKVStore(backend).Load()
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Empty(t, got)
}

type failingBackend struct {
	*storage.MemoryBackend
}

var errDiskFull = errors.New("disk full")

func (failingBackend) Set(string, string) error { return errDiskFull }
func (failingBackend) Remove(string) error      { return errDiskFull }
func (failingBackend) Get(string) (string, bool, error) {
	return "", false, errDiskFull
}

func TestKVStoreSurfacesBackendErrors(t *testing.T) {
	store := NewKVStore(failingBackend{storage.NewMemoryBackend()})

	assert.ErrorIs(t, store.SaveAll([]Task{{ID: "1", Text: "Sweep"}}), errDiskFull)
	assert.ErrorIs(t, store.Clear(), errDiskFull)

	got, err := store.Load()
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, got)
}
