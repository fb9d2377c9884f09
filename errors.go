package bitarray

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when text input or persisted data does
	// not decode as a bit array. Typed errors below unwrap to it.
	ErrInvalidFormat = errors.New("invalid bit array format")
)

// FormatError describes a malformed character in hex or binary input.
//
// It unwraps to ErrInvalidFormat.
type FormatError struct {
	Encoding string // "hex" or "bin"
	Offset   int    // character offset in the input
	Char     byte
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s character %q at offset %d", e.Encoding, e.Char, e.Offset)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

// IndexError is the panic value raised when a bit index is outside
// [0, Len()). It marks a contract violation, not a recoverable condition.
type IndexError struct {
	Index uint64
	Len   uint64
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bit index %d out of range [0, %d)", e.Index, e.Len)
}

// PreconditionError is the panic value raised for non-index contract
// violations, such as a zero digits-per-line argument.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
