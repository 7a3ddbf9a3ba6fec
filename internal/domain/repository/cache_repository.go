package repository

import (
	"context"
	"time"
)

// CacheRepository is the cache capability the gateway depends on.
// Implementations must provide atomic per-key get/set; concurrent
// writes to the same key are last-writer-wins.
type CacheRepository interface {
	// Get returns the value for key, or nil on a cache miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a key is present and unexpired.
	Exists(ctx context.Context, key string) (bool, error)
}
