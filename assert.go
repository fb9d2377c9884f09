//go:build !bitarray_fast

package bitarray

// assertIndex panics with *IndexError when i is outside [0, Len()).
// Building with the bitarray_fast tag replaces it with a no-op.
func (b *BitArray) assertIndex(i uint64) {
	if i >= b.numBits {
		panic(&IndexError{Index: i, Len: b.numBits})
	}
}
