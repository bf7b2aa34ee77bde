package lode

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/justapithecus/lode/lode"
)

// partition identifies the Hive partition of one decode.
type partition struct {
	source   string
	day      string
	decodeID string
}

// ErrInvalidFilename is returned for sidecar names containing path
// separators or "..".
var ErrInvalidFilename = fmt.Errorf("invalid sidecar filename")

// putFile writes a sidecar file to Lode Store at the computed Hive path,
// bypassing Dataset segment/manifest machinery.
// Uses lazy store initialization via storeFactory.
func (c *LodeClient) putFile(ctx context.Context, loc partition, filename, _ string, data []byte) error {
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	store, err := c.getOrCreateStore()
	if err != nil {
		return WrapInitError(fmt.Errorf("file write store init failed: %w", err), c.config.Dataset)
	}

	path := c.buildFilePath(loc, filename)
	if err := store.Put(ctx, path, bytes.NewReader(data)); err != nil {
		return WrapWriteError(err, path)
	}
	return nil
}

// getOrCreateStore lazily initializes the Store from the factory.
func (c *LodeClient) getOrCreateStore() (lode.Store, error) {
	c.storeOnce.Do(func() {
		c.store, c.storeErr = c.storeFactory()
	})
	return c.store, c.storeErr
}

// buildFilePath computes the Hive-partitioned path for a sidecar file.
// Format: datasets/<dataset>/partitions/source=<s>/day=<d>/decode_id=<id>/files/<filename>
func (c *LodeClient) buildFilePath(loc partition, filename string) string {
	return SidecarPath(c.config.Dataset, loc.source, loc.day, loc.decodeID, filename)
}

// SidecarPath returns the store path of a decode's sidecar file.
func SidecarPath(dataset, source, day, decodeID, filename string) string {
	return fmt.Sprintf("datasets/%s/partitions/source=%s/day=%s/decode_id=%s/files/%s",
		dataset,
		source,
		day,
		decodeID,
		filename,
	)
}
