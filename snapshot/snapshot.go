package snapshot

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/bitarray"
	"github.com/hupe1980/bitarray/blobstore"
)

// Options configures snapshot encoding.
type Options struct {
	// Compression selects the payload encoding. Default: CompressionZstd.
	Compression Compression
}

// DefaultOptions are the options used when none are given.
var DefaultOptions = Options{
	Compression: CompressionZstd,
}

// Write encodes the array to w as a snapshot.
func Write(w io.Writer, b *bitarray.BitArray, optFns ...func(o *Options)) error {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	payload, err := compress(b.Bytes(), opts.Compression)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	header := Header{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(opts.Compression),
		BitCount:    b.Len(),
		PayloadLen:  uint64(len(payload)),
		Checksum:    crc32.ChecksumIEEE(payload),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r. The payload checksum is verified before
// the array is constructed.
func Read(r io.Reader) (*bitarray.BitArray, error) {
	var header Header
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, header.Version)
	}
	if Compression(header.Compression) > CompressionLZ4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCompression, header.Compression)
	}

	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	if actual := crc32.ChecksumIEEE(payload); actual != header.Checksum {
		return nil, &ChecksumMismatchError{Expected: header.Checksum, Actual: actual}
	}

	data, err := decompress(payload, Compression(header.Compression))
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}

	b, err := bitarray.FromBytes(data, header.BitCount)
	if err != nil {
		return nil, fmt.Errorf("payload of %d bytes does not hold %d bits: %w",
			len(data), header.BitCount, err)
	}
	return b, nil
}

// Save writes a snapshot to path atomically (temp file + rename).
func Save(path string, b *bitarray.BitArray, optFns ...func(o *Options)) error {
	return saveToFile(path, func(w io.Writer) error {
		return Write(w, b, optFns...)
	})
}

// Load reads a snapshot from path.
func Load(path string) (*bitarray.BitArray, error) {
	var b *bitarray.BitArray
	err := loadFromFile(path, func(r io.Reader) error {
		var err error
		b, err = Read(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SaveToStore writes a snapshot to the named blob in the given store.
func SaveToStore(ctx context.Context, store blobstore.BlobStore, name string, b *bitarray.BitArray, optFns ...func(o *Options)) error {
	var buf bytes.Buffer
	if err := Write(&buf, b, optFns...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// LoadFromStore reads a snapshot from the named blob in the given store.
func LoadFromStore(ctx context.Context, store blobstore.BlobStore, name string) (*bitarray.BitArray, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Read(rc)
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}

func decompress(payload []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(payload, nil)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}

// saveToFile writes to a temp file in the target directory so the final
// rename is atomic.
func saveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriter(tmp)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

func loadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return readFunc(bufio.NewReader(f))
}
