// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

// Package cache implements the read-through response cache for idempotent
// GET endpoints and its write-side invalidation.
//
// A cache entry is a pure function of the inputs encoded in its key;
// staleness is bounded by the entry TTL or explicit invalidation after a
// write. Like the rate limiter, the cache treats every store error as a
// miss and every invalidation error as a no-op: the store is best-effort
// infrastructure and must never block the request path.
package cache

import (
	"context"
	"time"

	"github.com/SACHINKATHAR2005/viralprompts/internal/kv"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
)

// Entries is the subset of the kv store the cache depends on.
// Satisfied by [kv.Store]; faked in tests.
type Entries interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Cache memoizes serialized responses under deterministic keys.
type Cache struct {
	entries Entries
	ttl     time.Duration
	logger  *logger.Logger
}

// NewCache constructs a [Cache] with the given default entry TTL.
func NewCache(entries Entries, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		entries: entries,
		ttl:     ttl,
		logger:  log,
	}
}

// Get returns the cached payload for key. The second result reports a hit;
// any store error degrades to a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.entries.Get(ctx, key)
	if err != nil {
		if err != kv.ErrKeyNotFound {
			c.logger.Debug().Err(err).Str("key", key).Msg("cache read failed: treating as miss")
		}
		return nil, false
	}
	return value, true
}

// Set stores payload under key with the default TTL. Errors are logged and
// swallowed; a failed write only costs a future recomputation.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.entries.Set(ctx, key, payload, c.ttl); err != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache write failed: skipping")
	}
}

// Invalidate removes the given exact keys and glob patterns after a
// successful mutation. Over-invalidation is the deliberate policy: broad
// listing patterns are dropped wholesale rather than risking stale
// aggregates. Errors are logged and swallowed.
func (c *Cache) Invalidate(ctx context.Context, keys []string, patterns []string) {
	if len(keys) > 0 {
		if err := c.entries.Delete(ctx, keys...); err != nil {
			c.logger.Debug().Err(err).Strs("keys", keys).Msg("cache invalidation failed: skipping")
		}
	}

	for _, pattern := range patterns {
		if err := c.entries.DeletePattern(ctx, pattern); err != nil {
			c.logger.Debug().Err(err).Str("pattern", pattern).Msg("cache pattern invalidation failed: skipping")
		}
	}
}
