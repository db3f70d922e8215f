// Package cache provides content-addressed caching of rendered artifacts.
//
// The engine is deterministic, so an artifact cached under the hash of its
// input plus render options is indistinguishable from a fresh render. Two
// backends are provided: a file-based cache for CLI and server use, and a
// null cache that disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	// TTLArtifact is how long rendered outputs are kept. Renders are
	// cheap to redo, so the window is short.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
