package blobstore

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// Mirror copies every blob under prefix from src to dst, at most parallel
// copies in flight. Existing blobs in dst are overwritten. The first failure
// cancels the remaining copies.
func Mirror(ctx context.Context, src, dst BlobStore, prefix string, parallel int) error {
	if parallel <= 0 {
		parallel = 4
	}

	names, err := src.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("list source: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := copyBlob(ctx, src, dst, name); err != nil {
				return fmt.Errorf("mirror %q: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func copyBlob(ctx context.Context, src, dst BlobStore, name string) error {
	blob, err := src.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return err
	}
	defer rc.Close()

	w, err := dst.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, rc); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
