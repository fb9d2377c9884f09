package bitarray

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bitarray/blobstore"
)

func TestSaveLoadStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	b := New(256)
	b.SetRegion(100, 200)

	err := b.SaveToStore(ctx, store, "snapshots/current.bits")
	require.NoError(t, err)

	loaded, err := LoadFromStore(ctx, store, "snapshots/current.bits")
	require.NoError(t, err)
	require.True(t, b.Equal(loaded))

	names, err := store.List(ctx, "snapshots/")
	require.NoError(t, err)
	require.Equal(t, []string{"snapshots/current.bits"}, names)
}

func TestLoadFromStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := LoadFromStore(ctx, store, "missing.bits")
	require.Error(t, err)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadFromStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, store.Put(ctx, "bad.bits", []byte("garbage that is long enough to read")))

	_, err := LoadFromStore(ctx, store, "bad.bits")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidFormat)
}
