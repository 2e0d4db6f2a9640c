package cache

import (
	"context"
	"time"
)

// Store is a key-value store with per-entry expiration. Implementations:
// MemoryStore for single-instance deployments, RedisStore when REDIS_ENABLED
// is set.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
