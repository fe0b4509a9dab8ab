package store

import (
	"context"
	"testing"

	"codefolio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) ProfileStoreInterface {
		return NewMemoryStore()
	})
}

func TestMemoryStore_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	require.NoError(t, src.Save(ctx, fixtureProfile("b")))
	require.NoError(t, src.Save(ctx, fixtureProfile("a")))

	snap := src.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].UserID)
	assert.Equal(t, "b", snap[1].UserID)

	dst := NewMemoryStore()
	require.NoError(t, dst.Save(ctx, fixtureProfile("stale")))
	dst.Restore(append(snap, &models.Profile{}))

	n, err := dst.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = dst.FindByUserID(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)

	// the snapshot is a copy
	snap[0].Name = "changed"
	got, err := src.FindByUserID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "User a", got.Name)
}
