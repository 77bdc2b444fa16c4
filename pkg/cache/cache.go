// Package cache stores rendered graph artifacts so unchanged graphs are not
// re-rendered.
//
// # Backends
//
//   - [FileCache]: one file per entry under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for several editors rendering the same graphs
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are derived from the serialized graph and the render options with
// [RenderKey], so any edit to the graph or change of options misses:
//
//	key := cache.RenderKey(snapshot, "svg", opts)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data, nil
//	}
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported with ok == false and
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// DefaultTTL is the lifetime of a rendered artifact.
const DefaultTTL = 7 * 24 * time.Hour

// RenderKey returns the cache key for an artifact rendered from snapshot in
// the given format. opts must be JSON-encodable and should hold every option
// that changes the output.
func RenderKey(snapshot []byte, format string, opts any) string {
	optJSON, _ := json.Marshal(opts)
	sum := sha256.New()
	for _, part := range [][]byte{snapshot, []byte(format), optJSON} {
		// Length prefixes keep ("ab","c") and ("a","bc") apart.
		fmt.Fprintf(sum, "%d:", len(part))
		sum.Write(part)
	}
	return "render:" + hex.EncodeToString(sum.Sum(nil))
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache never stores anything. It backs --no-cache and the "none"
// cache backend.
type NullCache struct{}

// NewNullCache returns a cache on which every lookup misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
