// Package bitarray provides a fixed-capacity packed bit array for Go.
//
// A BitArray stores its bits in a contiguous byte buffer, one bit per
// position, with bit 0 living in the most significant bit of byte 0. On top
// of the packed representation it layers single-bit and region operators,
// search primitives, popcount queries, hex/binary text codecs and a binary
// persistence format.
//
// # Quick Start
//
//	b := bitarray.New(777)
//	b.Set(69)
//	b.SetRegion(100, 420)
//
//	idx, ok := b.NextSet(0)        // 69, true
//	n := b.Count()                 // number of set bits
//
//	s := b.HexString()             // "000...", MSB-first nibbles
//	b2, _ := bitarray.FromBin("1010111")
//
// # Region Operations
//
// SetRegion, ClearRegion and ToggleRegion operate on arbitrary inclusive bit
// ranges. Partial bytes at the two boundaries are handled bit by bit; every
// fully covered byte in between is filled (or flipped) as a whole. This keeps
// large-range operations O(bytes) rather than O(bits).
//
// # Persistence
//
// Save/Load use a fixed 18-byte ASCII magic header followed by the bit count
// and the raw buffer:
//
//	_ = b.Save("flags.bits")
//	b, err := bitarray.Load("flags.bits")
//
// WriteTo/ReadFrom expose the same format as a stream codec, and
// SaveToStore/LoadFromStore target any blobstore.BlobStore (local filesystem,
// in-memory, S3, MinIO). The snapshot subpackage adds a checksummed,
// optionally compressed format for larger arrays.
//
// # Error Model
//
// Contract violations (out-of-range index, zero digits-per-line) panic with
// *IndexError or *PreconditionError. Environmental failures (I/O errors,
// malformed input text, corrupt files) are returned as errors; malformed text
// and headers unwrap to ErrInvalidFormat. Building with the bitarray_fast tag
// strips the index checks entirely, trading safety for speed.
//
// # Concurrency
//
// A BitArray has a single owner and no internal locking. Wrap it in a mutex
// at the call site if it must be shared across goroutines.
package bitarray
