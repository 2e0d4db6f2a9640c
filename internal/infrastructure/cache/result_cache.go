package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const resultKeyPrefix = "meetingmind:result:"

// ResultCache memoizes processed-transcript results keyed by a digest of the
// inputs. Values are stored as JSON; callers own the payload shape.
type ResultCache struct {
	store Store
	ttl   time.Duration
}

// NewResultCache wraps a Store with JSON encoding and a fixed TTL
func NewResultCache(store Store, ttl time.Duration) *ResultCache {
	return &ResultCache{store: store, ttl: ttl}
}

// DigestKey builds a stable cache key from the run inputs
func DigestKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return resultKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get loads and decodes a cached value into out. The bool reports a hit.
func (rc *ResultCache) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, found, err := rc.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return true, nil
}

// Set encodes and stores a value under key with the cache TTL
func (rc *ResultCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode result for cache: %w", err)
	}
	return rc.store.Set(ctx, key, string(raw), rc.ttl)
}

// Delete drops a cached entry
func (rc *ResultCache) Delete(ctx context.Context, key string) error {
	return rc.store.Delete(ctx, key)
}
