package bitarray

import (
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// HexLen returns the exact number of characters HexString produces,
// one digit per 4 bits.
func (b *BitArray) HexLen() int {
	return int((b.numBits + 3) / 4)
}

// BinLen returns the exact number of characters BinString produces,
// one character per bit.
func (b *BitArray) BinLen() int {
	return int(b.numBits)
}

// nibble returns the value of the d-th hex digit (0-based, MSB-first).
// When the array length is not a multiple of 4, the final digit is
// left-padded with zero bits: a trailing 3-bit group 111 reads as 0111.
func (b *BitArray) nibble(d int) byte {
	v := b.data[d/2]
	if d%2 == 0 {
		v >>= 4
	} else {
		v &= 0x0F
	}
	if d == b.HexLen()-1 {
		if rem := b.numBits % 4; rem != 0 {
			v >>= 4 - rem
		}
	}
	return v
}

// HexString encodes the array as uppercase hex, one digit per 4 bits,
// most significant nibble first, no separators.
func (b *BitArray) HexString() string {
	if b.numBits == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(b.HexLen())
	for d := 0; d < b.HexLen(); d++ {
		sb.WriteByte(hexDigits[b.nibble(d)])
	}
	return sb.String()
}

// BinString encodes the array as '0'/'1' characters, most significant bit
// first, no separators. A zero-length array yields "".
func (b *BitArray) BinString() string {
	var sb strings.Builder
	sb.Grow(b.BinLen())
	for i := uint64(0); i < b.numBits; i++ {
		if b.data[i/8]&mask(i) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// FromHex decodes a hex string into a BitArray of len(s)*4 bits. Decoding is
// case-insensitive; any non-hex character aborts with an error that unwraps
// to ErrInvalidFormat.
func FromHex(s string) (*BitArray, error) {
	b := New(uint64(len(s)) * 4)

	for i := 0; i < len(s); i++ {
		c := s[i]
		var v byte
		switch {
		case '0' <= c && c <= '9':
			v = c - '0'
		case 'a' <= c && c <= 'f':
			v = 10 + c - 'a'
		case 'A' <= c && c <= 'F':
			v = 10 + c - 'A'
		default:
			return nil, &FormatError{Encoding: "hex", Offset: i, Char: c}
		}

		if i%2 == 0 {
			b.data[i/2] |= v << 4
		} else {
			b.data[i/2] |= v
		}
	}
	return b, nil
}

// FromBin decodes a '0'/'1' string into a BitArray of len(s) bits. Any other
// character aborts with an error that unwraps to ErrInvalidFormat.
func FromBin(s string) (*BitArray, error) {
	b := New(uint64(len(s)))

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			b.data[i/8] |= mask(uint64(i))
		case '0':
			// already clear
		default:
			return nil, &FormatError{Encoding: "bin", Offset: i, Char: s[i]}
		}
	}
	return b, nil
}
