package bitarray

// regionOp selects the body-fill behavior of operateRegion.
type regionOp uint8

const (
	opSet regionOp = iota
	opClear
	opToggle
)

// SetRegion sets every bit in the inclusive range [start, end].
// The bounds may be given in either order.
func (b *BitArray) SetRegion(start, end uint64) {
	b.operateRegion(start, end, opSet)
}

// ClearRegion clears every bit in the inclusive range [start, end].
func (b *BitArray) ClearRegion(start, end uint64) {
	b.operateRegion(start, end, opClear)
}

// ToggleRegion flips every bit in the inclusive range [start, end].
func (b *BitArray) ToggleRegion(start, end uint64) {
	b.operateRegion(start, end, opToggle)
}

// SetAll sets every bit. A zero-length array is left untouched.
func (b *BitArray) SetAll() {
	if b.numBits == 0 {
		return
	}
	b.operateRegion(0, b.numBits-1, opSet)
}

// ClearAll clears every bit. A zero-length array is left untouched.
func (b *BitArray) ClearAll() {
	if b.numBits == 0 {
		return
	}
	b.operateRegion(0, b.numBits-1, opClear)
}

// ToggleAll flips every bit. A zero-length array is left untouched.
// Don't-care bits in the final byte may be flipped as well.
func (b *BitArray) ToggleAll() {
	if b.numBits == 0 {
		return
	}
	b.operateRegion(0, b.numBits-1, opToggle)
}

// operateRegion applies op to the inclusive range [start, end].
//
// The range is split into a head (partial byte containing start), a tail
// (partial byte containing end) and a body of fully covered bytes. Head and
// tail are processed bit by bit; the body is filled or flipped whole bytes at
// a time, which is what makes large regions O(bytes) instead of O(bits).
func (b *BitArray) operateRegion(start, end uint64, op regionOp) {
	b.assertIndex(start)
	b.assertIndex(end)

	if start > end {
		start, end = end, start
	}

	startByte := start / 8
	endByte := end / 8

	// Both ends inside one byte: no whole-byte shortcut possible.
	if startByte == endByte {
		for i := start; i <= end; i++ {
			b.applyBit(i, op)
		}
		return
	}

	if off := start % 8; off != 0 {
		for i := off; i < 8; i++ {
			b.applyBit(start, op)
			start++
		}
		startByte++
	}

	if off := end % 8; off != 7 {
		for i := int8(off); i >= 0; i-- {
			b.applyBit(end, op)
			end--
		}
		endByte--
	}

	body := b.data[startByte : endByte+1]
	switch op {
	case opSet:
		for i := range body {
			body[i] = 0xFF
		}
	case opClear:
		for i := range body {
			body[i] = 0x00
		}
	default:
		for i := range body {
			body[i] ^= 0xFF
		}
	}
}

// applyBit performs op on a single, already validated index.
func (b *BitArray) applyBit(i uint64, op regionOp) {
	switch op {
	case opSet:
		b.data[i/8] |= mask(i)
	case opClear:
		b.data[i/8] &^= mask(i)
	default:
		b.data[i/8] ^= mask(i)
	}
}
