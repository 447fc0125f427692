package ids

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsGenerator(t *testing.T) {
	g, err := New("")
	require.NoError(t, err)
	assert.IsType(t, XID{}, g)

	g, err = New(KindUUID)
	require.NoError(t, err)
	assert.IsType(t, UUID{}, g)

	_, err = New("timestamp")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGeneratorsProduceValidDistinctIDs(t *testing.T) {
	for _, kind := range []string{KindXID, KindUUID} {
		t.Run(kind, func(t *testing.T) {
			g, err := New(kind)
			require.NoError(t, err)

			seen := make(map[string]bool)
			for i := 0; i < 1000; i++ {
				id := g.NewID()
				require.False(t, seen[id], "duplicate id %s", id)
				seen[id] = true

				switch kind {
				case KindXID:
					_, err = xid.FromString(id)
				case KindUUID:
					_, err = uuid.Parse(id)
				}
				require.NoError(t, err)
			}
		})
	}
}

func TestGeneratorFunc(t *testing.T) {
	g := GeneratorFunc(func() string { return "fixed" })
	assert.Equal(t, "fixed", g.NewID())
}
