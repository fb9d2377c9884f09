package bitarray

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hupe1980/bitarray/blobstore"
)

// SaveToStore writes the array to the named blob in the given store, using
// the same stream format as Save.
func (b *BitArray) SaveToStore(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) error {
	opts := applyOptions(optFns)

	err := b.saveToStore(ctx, store, name)
	opts.logger.LogSave(ctx, name, b.numBits, err)
	return err
}

func (b *BitArray) saveToStore(ctx context.Context, store blobstore.BlobStore, name string) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create blob %q: %w", name, err)
	}

	if _, err := b.WriteTo(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("write blob %q: %w", name, err)
	}
	return w.Close()
}

// LoadFromStore reads a bit array previously written with SaveToStore.
func LoadFromStore(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*BitArray, error) {
	opts := applyOptions(optFns)

	b, err := loadFromStore(ctx, store, name)
	if err != nil {
		opts.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	opts.logger.LogLoad(ctx, name, b.numBits, nil)
	return b, nil
}

func loadFromStore(ctx context.Context, store blobstore.BlobStore, name string) (*BitArray, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open blob %q: %w", name, err)
	}
	defer blob.Close()

	data := make([]byte, blob.Size())
	if _, err := blobstore.ReadFullAt(ctx, blob, data, 0); err != nil {
		return nil, fmt.Errorf("read blob %q: %w", name, err)
	}

	b := New(0)
	if _, err := b.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("decode blob %q: %w", name, err)
	}
	return b, nil
}
