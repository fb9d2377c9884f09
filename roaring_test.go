package bitarray

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/require"
)

func TestToRoaring(t *testing.T) {
	b := New(1000)
	b.SetMany(0, 69, 420, 777, 999)

	rb, err := b.ToRoaring()
	require.NoError(t, err)
	require.Equal(t, uint64(5), rb.GetCardinality())
	require.Equal(t, []uint32{0, 69, 420, 777, 999}, rb.ToArray())
}

func TestToRoaring_Empty(t *testing.T) {
	rb, err := New(0).ToRoaring()
	require.NoError(t, err)
	require.True(t, rb.IsEmpty())
}

func TestFromRoaring(t *testing.T) {
	rb := roaring.BitmapOf(1, 8, 63)

	b, err := FromRoaring(rb, 64)
	require.NoError(t, err)
	require.Equal(t, uint64(64), b.Len())
	require.Equal(t, uint64(3), b.Count())
	require.True(t, b.Test(1) && b.Test(8) && b.Test(63))
}

func TestFromRoaring_OutOfRange(t *testing.T) {
	rb := roaring.BitmapOf(64)

	_, err := FromRoaring(rb, 64)
	require.Error(t, err)
}

func TestRoaring_RoundTrip(t *testing.T) {
	b := New(4096)
	b.SetRegion(1000, 3000)

	rb, err := b.ToRoaring()
	require.NoError(t, err)

	back, err := FromRoaring(rb, b.Len())
	require.NoError(t, err)
	require.True(t, b.Equal(back))
}
