// Package archive writes and reads meal snapshots: gzip-compressed JSON
// lines, one meal per line, in ledger order.
package archive

import (
	"context"
	"io"
)

// Store persists snapshot blobs under a key.
type Store interface {
	// Put writes data under key, replacing any existing blob.
	Put(ctx context.Context, key string, data []byte) error

	// Get opens the blob stored under key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
