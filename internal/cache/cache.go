// Package cache stores short-lived serialized values such as the tournament
// list. MemoryCache is the single-process default; RedisCache is used when
// REDIS_URL is configured.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache holds byte values with a TTL.
type Cache interface {
	// Get returns the value for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl. ttl <= 0 never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
