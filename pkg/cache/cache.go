// Package cache stores encoded figures so unchanged figures are not redrawn.
//
// Rendering is deterministic, so an artifact is fully identified by the
// figure, its definition revision, the output format and the input bytes.
// [Keyer] turns those into a key; a [Cache] maps keys to encoded files.
//
// Backends:
//   - [FileCache]: one file per entry under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for CI runners and the preview server
//   - [NullCache]: stores nothing (--no-cache)
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// DefaultTTL is how long entries live when no TTL is configured.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// DefaultDir returns the directory of the file cache: $XDG_CACHE_HOME/genfigs
// or the platform equivalent.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "genfigs"), nil
}
