package bitarray

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// fileHeader is the fixed 18-byte ASCII magic at the start of every
// persisted bit array.
const fileHeader = "BitArray_Data_File"

// byteOrder fixes the width and endianness of the persisted bit count to a
// little-endian uint64. The format carries no endianness marker, so files
// written with a different word layout are not interchangeable; treat it as
// a same-platform format rather than a portable wire format.
var byteOrder = binary.LittleEndian

// WriteTo writes the array to w: magic header, bit count, raw buffer.
// It implements io.WriterTo.
func (b *BitArray) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, fileHeader)
	if err != nil {
		return int64(n), err
	}
	written := int64(n)

	if err := binary.Write(w, byteOrder, b.numBits); err != nil {
		return written, err
	}
	written += 8

	m, err := w.Write(b.data)
	written += int64(m)
	return written, err
}

// ReadFrom replaces the array's contents with the stream read from r.
// On failure the receiver is left unmodified. It implements io.ReaderFrom.
func (b *BitArray) ReadFrom(r io.Reader) (int64, error) {
	header := make([]byte, len(fileHeader))
	n, err := io.ReadFull(r, header)
	read := int64(n)
	if err != nil {
		return read, fmt.Errorf("%w: short header: %w", ErrInvalidFormat, err)
	}
	if string(header) != fileHeader {
		return read, fmt.Errorf("%w: bad magic header %q", ErrInvalidFormat, header)
	}

	var numBits uint64
	if err := binary.Read(r, byteOrder, &numBits); err != nil {
		return read, fmt.Errorf("read bit count: %w", err)
	}
	read += 8
	if numBits > math.MaxUint64-7 {
		return read, fmt.Errorf("%w: bit count %d overflows", ErrInvalidFormat, numBits)
	}

	data := make([]byte, bytesFromBits(numBits))
	m, err := io.ReadFull(r, data)
	read += int64(m)
	if err != nil {
		return read, fmt.Errorf("read %d data bytes: %w", len(data), err)
	}

	b.numBits = numBits
	b.data = data
	return read, nil
}

// Save writes the array to path atomically: the content goes to a temp file
// in the same directory, is flushed and fsynced, then renamed over the
// target.
func (b *BitArray) Save(path string, optFns ...Option) error {
	opts := applyOptions(optFns)

	err := saveToFile(path, func(w io.Writer) error {
		_, err := b.WriteTo(w)
		return err
	})
	opts.logger.LogSave(context.Background(), path, b.numBits, err)
	return err
}

// Load reads a bit array previously written by Save. A file lacking the
// magic header yields an error that unwraps to ErrInvalidFormat; no array is
// returned on any failure.
func Load(path string, optFns ...Option) (*BitArray, error) {
	opts := applyOptions(optFns)

	b := New(0)
	err := loadFromFile(path, func(r io.Reader) error {
		_, err := b.ReadFrom(r)
		return err
	})
	if err != nil {
		opts.logger.LogLoad(context.Background(), path, 0, err)
		return nil, err
	}
	opts.logger.LogLoad(context.Background(), path, b.numBits, nil)
	return b, nil
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

	// Best-effort: fsync the directory so the rename is durable on POSIX.
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
