//go:build bitarray_fast

package bitarray

// Index checks are compiled out in fast mode. Out-of-range access is
// undefined behavior under this tag.
func (b *BitArray) assertIndex(uint64) {}
