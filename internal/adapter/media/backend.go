// Package media implements object-storage backends for audio blobs.
//
// The environment decision is taken once, at wiring: production gets the
// MinIO-backed store, everything else gets the deterministic mock, and no
// per-call environment checks exist anywhere downstream.
package media

import (
	"context"
	"time"
)

// Backend is the object-storage strategy the media lifecycle manager
// drives. Keys are full object keys (path + extension); URL construction
// belongs to the backend because only it knows where objects are served.
type Backend interface {
	// Upload stores payload at key and returns the object's public URL.
	Upload(ctx context.Context, key string, payload []byte, contentType string) (string, error)

	// Copy duplicates srcKey to dstKey server-side, without the bytes
	// passing through this process, and returns dstKey's public URL.
	Copy(ctx context.Context, srcKey, dstKey string) (string, error)

	// Delete removes the object at key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Stat returns the byte size of the object at key, or
	// domain.ErrNotFound if no such object exists.
	Stat(ctx context.Context, key string) (int64, error)

	// SignedPutURL returns a pre-signed URL a client can PUT the object
	// bytes to directly.
	SignedPutURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// PublicURL returns the URL the object at key is served from.
	PublicURL(key string) string
}
