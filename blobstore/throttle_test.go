package blobstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestThrottledStore_PassThrough(t *testing.T) {
	inner := NewMemoryStore()
	store := NewThrottledStore(inner, 1<<20)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a.bits", []byte("payload")))

	blob, err := store.Open(ctx, "a.bits")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(7), blob.Size())

	buf := make([]byte, 7)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, "payload", string(buf))

	w, err := store.Create(ctx, "b.bits")
	require.NoError(t, err)
	_, err = w.Write([]byte("streamed"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"a.bits", "b.bits"}, names)

	require.NoError(t, store.Delete(ctx, "a.bits"))
}

func TestThrottledStore_LimitsThroughput(t *testing.T) {
	inner := NewMemoryStore()
	// 1 KiB/s budget; a 512 B write beyond the initial burst must wait.
	store := NewThrottledStore(inner, 1024)
	ctx := context.Background()

	// Drain the initial burst.
	require.NoError(t, store.Put(ctx, "burst.bits", make([]byte, 1024)))

	start := time.Now()
	require.NoError(t, store.Put(ctx, "next.bits", make([]byte, 512)))
	elapsed := time.Since(start)

	require.GreaterOrEqual(t, elapsed, 250*time.Millisecond)
}

func TestThrottledStore_ContextCanceled(t *testing.T) {
	inner := NewMemoryStore()
	store := NewThrottledStore(inner, 16)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Far beyond what the budget admits within the deadline.
	err := store.Put(ctx, "big.bits", make([]byte, 1<<20))
	require.Error(t, err)
}

func TestThrottledStore_LargerThanBurst(t *testing.T) {
	inner := NewMemoryStore()
	store := NewThrottledStore(inner, 1<<20)
	ctx := context.Background()

	// A single request larger than the burst must be split, not rejected.
	data := make([]byte, 1<<20+1<<18)
	require.NoError(t, store.Put(ctx, "huge.bits", data))

	blob, err := store.Open(ctx, "huge.bits")
	require.NoError(t, err)
	defer blob.Close()
	require.Equal(t, int64(len(data)), blob.Size())
}
