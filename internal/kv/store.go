// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

// Package kv wraps the shared Redis instance used for rate-limit counters
// and the response cache.
//
// The store is deliberately optional infrastructure: a [Store] constructed
// without an address, or one whose Redis became unreachable, answers every
// operation with [ErrNotConnected] or the underlying network error. Callers
// (the rate limiter and the cache) treat any error as "store unavailable"
// and fail open, so an outage of this layer never blocks request traffic.
package kv

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
)

// Store is a thin typed facade over a redigo connection pool.
//
// A nil pool is a first-class "not yet connected" state: every method
// checks it and returns [ErrNotConnected], so callers never need a nilable
// global to implement fail-open checks.
type Store struct {
	pool   *redis.Pool
	logger *logger.Logger
}

// Connect builds a [Store] for the configured Redis address. When the
// address is empty the returned Store is in the not-connected state; this
// is a supported configuration (rate limiting and caching degrade to
// fail-open no-ops), so no error is returned for it.
//
// Connectivity is probed with a PING; a failing probe is logged but does
// not fail startup, again because the store is best-effort infrastructure.
func Connect(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *Store {
	if cfg.Address == "" {
		log.Warn().Msg("redis address is not configured: rate limiting and caching run fail-open")
		return &Store{logger: log}
	}

	pool := &redis.Pool{
		MaxIdle:     cfg.MaxIdle,
		MaxActive:   cfg.MaxActive,
		Wait:        true,
		IdleTimeout: 5 * time.Minute,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", cfg.Address,
				redis.DialPassword(cfg.Password),
				redis.DialDatabase(cfg.DB),
				redis.DialConnectTimeout(cfg.ConnectTimeout),
				redis.DialReadTimeout(cfg.ConnectTimeout),
				redis.DialWriteTimeout(cfg.ConnectTimeout),
			)
		},
	}

	store := &Store{pool: pool, logger: log}
	if err := store.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("address", cfg.Address).
			Msg("redis is not reachable at startup: continuing fail-open")
	} else {
		log.Info().Str("address", cfg.Address).Msg("connected to redis")
	}

	return store
}

// Connected reports whether the store has a pool at all. A true result
// does not guarantee Redis is reachable; it only distinguishes the typed
// not-connected state from a configured store.
func (s *Store) Connected() bool {
	return s != nil && s.pool != nil
}

// Ping probes connectivity. Returns [ErrNotConnected] when no pool exists.
func (s *Store) Ping(ctx context.Context) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Do("PING")
	return err
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	if !s.Connected() {
		return nil
	}
	return s.pool.Close()
}

// Get returns the raw value stored under key, or [ErrKeyNotFound] when the
// key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	value, err := redis.Bytes(conn.Do("GET", key))
	if err == redis.ErrNil {
		return nil, ErrKeyNotFound
	}
	return value, err
}

// Set stores value under key with the given TTL (SETEX). A non-positive
// TTL stores the value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if ttl > 0 {
		_, err = conn.Do("SETEX", key, int64(ttl.Seconds()), value)
	} else {
		_, err = conn.Do("SET", key, value)
	}
	return err
}

// Delete removes the given keys. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	args := make([]any, 0, len(keys))
	for _, key := range keys {
		args = append(args, key)
	}

	_, err = conn.Do("DEL", args...)
	return err
}

// DeletePattern removes every key matching the glob pattern using an
// incremental SCAN cursor loop. SCAN rather than KEYS: the store is shared
// multi-tenant infrastructure and must not be blocked by a full keyspace
// walk in one command.
func (s *Store) DeletePattern(ctx context.Context, pattern string) error {
	conn, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	cursor := int64(0)
	for {
		values, err := redis.Values(conn.Do("SCAN", cursor, "MATCH", pattern, "COUNT", 100))
		if err != nil {
			return err
		}

		var keys []string
		if _, err := redis.Scan(values, &cursor, &keys); err != nil {
			return err
		}

		if len(keys) > 0 {
			args := make([]any, 0, len(keys))
			for _, key := range keys {
				args = append(args, key)
			}
			if _, err := conn.Do("DEL", args...); err != nil {
				return err
			}
		}

		if cursor == 0 {
			return nil
		}
	}
}

// IncrWithExpire atomically increments the counter under key and ensures
// the key carries the window TTL. Returns the post-increment value.
//
// The INCR is the store's atomic primitive; no client-side locking is
// involved, which makes this safe for cross-process coordination.
func (s *Store) IncrWithExpire(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	count, err := redis.Int64(conn.Do("INCR", key))
	if err != nil {
		return 0, err
	}

	// EXPIRE NX attaches the window TTL only when the key has none. Running
	// it on every increment, not just the first, heals a counter whose
	// connection dropped between INCR and EXPIRE, which would otherwise
	// persist forever.
	if _, err := conn.Do("EXPIRE", key, int64(ttl.Seconds()), "NX"); err != nil {
		return count, err
	}

	return count, nil
}

// GetInt returns the integer value under key, or 0 with [ErrKeyNotFound]
// when the key does not exist.
func (s *Store) GetInt(ctx context.Context, key string) (int64, error) {
	conn, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	value, err := redis.Int64(conn.Do("GET", key))
	if err == redis.ErrNil {
		return 0, ErrKeyNotFound
	}
	return value, err
}

// conn checks the typed not-connected state and leases a pooled connection.
func (s *Store) conn(ctx context.Context) (redis.Conn, error) {
	if !s.Connected() {
		return nil, ErrNotConnected
	}
	return s.pool.GetContext(ctx)
}
