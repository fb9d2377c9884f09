// Package snapshot provides a checksummed, optionally compressed binary
// format for persisting large bit arrays.
//
// Unlike the classic BitArray file format, a snapshot carries an explicit
// version, a compression flag and a CRC32 of the payload, so corruption is
// detected on load instead of silently producing a wrong array.
//
//	err := snapshot.Save("flags.snap", b, func(o *snapshot.Options) {
//	    o.Compression = snapshot.CompressionZstd
//	})
//	b, err := snapshot.Load("flags.snap")
package snapshot
