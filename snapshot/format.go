package snapshot

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies bit array snapshot files (ASCII: "BIT0").
	MagicNumber = 0x42495430
	// Version is the current snapshot format version (v1.0.0).
	Version = 0x00010000
)

// Compression selects the payload encoding.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidCompression = errors.New("unknown compression")
)

// Header is the fixed 32-byte header at the start of every snapshot.
type Header struct {
	Magic       uint32 // 0x42495430 ("BIT0")
	Version     uint32 // Format version
	Compression uint8
	Padding1    [3]byte
	BitCount    uint64 // Logical size of the array in bits
	PayloadLen  uint64 // Stored payload size in bytes
	Checksum    uint32 // CRC32 (IEEE) of the stored payload
}

// ChecksumMismatchError is returned when payload verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// IsChecksumMismatch returns true if err is a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}
