package bitarray

import (
	"fmt"
	"math"
)

// BitArray is a fixed-capacity packed sequence of bits.
//
// Bit 0 is the most significant bit of byte 0, so bit i lives in byte i/8
// under the mask 0x80 >> (i % 8). The buffer always holds exactly
// ceil(Len()/8) bytes; bits in the final byte beyond Len() carry no meaning.
//
// The zero value is an empty, zero-length array ready for use.
type BitArray struct {
	numBits uint64
	data    []byte
}

// New creates a BitArray of the given size in bits, all bits clear.
// A size of zero is valid and yields an empty array.
func New(size uint64) *BitArray {
	return &BitArray{
		numBits: size,
		data:    make([]byte, bytesFromBits(size)),
	}
}

// FromBytes creates a BitArray of the given size backed by a copy of data.
// len(data) must be exactly ceil(size/8).
func FromBytes(data []byte, size uint64) (*BitArray, error) {
	if uint64(len(data)) != bytesFromBits(size) {
		return nil, fmt.Errorf("%w: %d bytes cannot hold exactly %d bits", ErrInvalidFormat, len(data), size)
	}
	b := New(size)
	copy(b.data, data)
	return b, nil
}

// Len returns the size of the array in bits.
func (b *BitArray) Len() uint64 {
	return b.numBits
}

// ByteLen returns the size of the underlying buffer in bytes.
func (b *BitArray) ByteLen() int {
	return len(b.data)
}

// Bytes returns a copy of the underlying buffer, including any don't-care
// bits in the final byte.
func (b *BitArray) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// Clone returns a fully independent copy, buffer included.
func (b *BitArray) Clone() *BitArray {
	c := &BitArray{
		numBits: b.numBits,
		data:    make([]byte, len(b.data)),
	}
	copy(c.data, b.data)
	return c
}

// Equal reports whether two arrays have the same length and the same value
// at every bit position. Don't-care bits in the final byte are ignored.
func (b *BitArray) Equal(other *BitArray) bool {
	if b.numBits != other.numBits {
		return false
	}
	if b.numBits == 0 {
		return true
	}
	full := int(b.numBits / 8)
	for i := 0; i < full; i++ {
		if b.data[i] != other.data[i] {
			return false
		}
	}
	if rem := b.numBits % 8; rem != 0 {
		mask := byte(0xFF << (8 - rem))
		if b.data[full]&mask != other.data[full]&mask {
			return false
		}
	}
	return true
}

// Resize changes the capacity to size bits in place. Existing bits up to
// min(old, new) are preserved; when growing, every bit in [old, new) is
// cleared.
func (b *BitArray) Resize(size uint64) {
	newData := make([]byte, bytesFromBits(size))
	copy(newData, b.data)

	oldSize := b.numBits
	b.data = newData
	b.numBits = size

	if size > oldSize {
		b.clearGrownRegion(oldSize, size-1)
	}
}

// clearGrownRegion clears [start, end] without the don't-care guarantees of
// make: the partial byte shared with the old tail may hold stale bits.
func (b *BitArray) clearGrownRegion(start, end uint64) {
	b.operateRegion(start, end, opClear)
}

// Test reports whether bit i is set.
func (b *BitArray) Test(i uint64) bool {
	b.assertIndex(i)
	return b.data[i/8]&mask(i) != 0
}

// Set sets bit i.
func (b *BitArray) Set(i uint64) {
	b.assertIndex(i)
	b.data[i/8] |= mask(i)
}

// Clear clears bit i.
func (b *BitArray) Clear(i uint64) {
	b.assertIndex(i)
	b.data[i/8] &^= mask(i)
}

// Toggle flips bit i.
func (b *BitArray) Toggle(i uint64) {
	b.assertIndex(i)
	b.data[i/8] ^= mask(i)
}

// SetMany sets every listed bit, in the order given.
func (b *BitArray) SetMany(indices ...uint64) {
	for _, i := range indices {
		b.Set(i)
	}
}

// ClearMany clears every listed bit, in the order given.
func (b *BitArray) ClearMany(indices ...uint64) {
	for _, i := range indices {
		b.Clear(i)
	}
}

// ToggleMany flips every listed bit, in the order given.
func (b *BitArray) ToggleMany(indices ...uint64) {
	for _, i := range indices {
		b.Toggle(i)
	}
}

func mask(i uint64) byte {
	return 0x80 >> (i % 8)
}

func bytesFromBits(bits uint64) uint64 {
	if bits > math.MaxUint64-7 {
		panic(&PreconditionError{Op: "bitarray", Reason: "size overflows byte count"})
	}
	return (bits + 7) / 8
}
