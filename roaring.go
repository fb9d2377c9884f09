package bitarray

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// ToRoaring converts the array to a compressed roaring bitmap holding the
// indexes of every set bit. Roaring bitmaps address 32-bit values, so arrays
// longer than 2^32 bits refuse conversion.
func (b *BitArray) ToRoaring() (*roaring.Bitmap, error) {
	if b.numBits > math.MaxUint32+1 {
		return nil, fmt.Errorf("bit array of %d bits exceeds the 32-bit roaring domain", b.numBits)
	}

	rb := roaring.New()
	if b.numBits == 0 {
		return rb, nil
	}
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		rb.Add(uint32(i))
		if i+1 == b.numBits {
			break
		}
	}
	return rb, nil
}

// FromRoaring builds a BitArray of the given size with a bit set for every
// value in the bitmap. The bitmap must not contain values >= size.
func FromRoaring(rb *roaring.Bitmap, size uint64) (*BitArray, error) {
	if !rb.IsEmpty() && uint64(rb.Maximum()) >= size {
		return nil, fmt.Errorf("roaring value %d does not fit in %d bits", rb.Maximum(), size)
	}

	b := New(size)
	it := rb.Iterator()
	for it.HasNext() {
		i := uint64(it.Next())
		b.data[i/8] |= mask(i)
	}
	return b, nil
}
