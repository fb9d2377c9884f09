package bitarray

import (
	"io"
)

// FprintHex writes the hex encoding of the array to w, digitsPerLine digits
// per line, ", " separated within a line and a newline at each line boundary
// and at the end. The digit ordering and final-nibble padding match
// HexString. digitsPerLine must be non-zero; zero panics.
//
// A zero-length array writes nothing.
func (b *BitArray) FprintHex(w io.Writer, digitsPerLine uint64) error {
	if digitsPerLine == 0 {
		panic(&PreconditionError{Op: "FprintHex", Reason: "digitsPerLine must be non-zero"})
	}
	if b.numBits == 0 {
		return nil
	}

	n := uint64(b.HexLen())
	for i := uint64(1); i < n; i++ {
		sep := ", "
		if i%digitsPerLine == 0 {
			sep = "\n"
		}
		if _, err := w.Write([]byte{hexDigits[b.nibble(int(i - 1))]}); err != nil {
			return err
		}
		if _, err := io.WriteString(w, sep); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, string(hexDigits[b.nibble(int(n-1))])+"\n")
	return err
}

// FprintBin writes the binary encoding of the array to w, charsPerLine
// characters per line with the same separator rules as FprintHex.
// charsPerLine must be non-zero; zero panics.
func (b *BitArray) FprintBin(w io.Writer, charsPerLine uint64) error {
	if charsPerLine == 0 {
		panic(&PreconditionError{Op: "FprintBin", Reason: "charsPerLine must be non-zero"})
	}

	for i := uint64(1); i <= b.numBits; i++ {
		c := byte('0')
		if b.data[(i-1)/8]&mask(i-1) != 0 {
			c = '1'
		}
		if _, err := w.Write([]byte{c}); err != nil {
			return err
		}
		if i != b.numBits {
			sep := ", "
			if i%charsPerLine == 0 {
				sep = "\n"
			}
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}
