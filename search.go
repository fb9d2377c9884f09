package bitarray

// findNext scans forward from index from (inclusive) for the first bit equal
// to target. Bytes that cannot contain a match (0x00 when searching for set
// bits, 0xFF when searching for clear bits) are skipped whole.
func (b *BitArray) findNext(from uint64, target bool) (uint64, bool) {
	b.assertIndex(from)

	startByte := from / 8
	for byteIdx := startByte; byteIdx < uint64(len(b.data)); byteIdx++ {
		v := b.data[byteIdx]
		if (target && v == 0x00) || (!target && v == 0xFF) {
			continue
		}

		i := uint64(0)
		if byteIdx == startByte {
			i = from % 8
		}
		base := byteIdx * 8
		for ; i < 8 && base+i < b.numBits; i++ {
			if (b.data[byteIdx]&mask(base+i) != 0) == target {
				return base + i, true
			}
		}
	}
	return 0, false
}

// findPrev scans backward from index from (inclusive) down to bit 0, with the
// same byte-skip as findNext.
func (b *BitArray) findPrev(from uint64, target bool) (uint64, bool) {
	b.assertIndex(from)

	startByte := from / 8
	for byteIdx := startByte; ; byteIdx-- {
		v := b.data[byteIdx]
		if !((target && v == 0x00) || (!target && v == 0xFF)) {
			i := 7
			if byteIdx == startByte {
				i = int(from % 8)
			}
			base := byteIdx * 8
			for ; i >= 0; i-- {
				if (b.data[byteIdx]&mask(base+uint64(i)) != 0) == target {
					return base + uint64(i), true
				}
			}
		}
		if byteIdx == 0 {
			return 0, false
		}
	}
}

// NextSet returns the index of the first set bit at or after from.
// The second result is false when no such bit exists.
func (b *BitArray) NextSet(from uint64) (uint64, bool) {
	return b.findNext(from, true)
}

// NextClear returns the index of the first clear bit at or after from.
func (b *BitArray) NextClear(from uint64) (uint64, bool) {
	return b.findNext(from, false)
}

// PrevSet returns the index of the first set bit at or before from.
func (b *BitArray) PrevSet(from uint64) (uint64, bool) {
	return b.findPrev(from, true)
}

// PrevClear returns the index of the first clear bit at or before from.
func (b *BitArray) PrevClear(from uint64) (uint64, bool) {
	return b.findPrev(from, false)
}

// FirstSet returns the index of the lowest set bit.
func (b *BitArray) FirstSet() (uint64, bool) {
	return b.findNext(0, true)
}

// FirstClear returns the index of the lowest clear bit.
func (b *BitArray) FirstClear() (uint64, bool) {
	return b.findNext(0, false)
}

// LastSet returns the index of the highest set bit.
func (b *BitArray) LastSet() (uint64, bool) {
	if b.numBits == 0 {
		panic(&IndexError{Index: 0, Len: 0})
	}
	return b.findPrev(b.numBits-1, true)
}

// LastClear returns the index of the highest clear bit.
func (b *BitArray) LastClear() (uint64, bool) {
	if b.numBits == 0 {
		panic(&IndexError{Index: 0, Len: 0})
	}
	return b.findPrev(b.numBits-1, false)
}
