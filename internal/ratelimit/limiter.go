// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

// Package ratelimit implements fixed-window request counters backed by the
// shared Redis store.
//
// The time axis is divided into non-overlapping intervals aligned to window
// boundaries; every request in the same window for the same (action,
// principal) pair hits the same counter key, and the key expires with the
// window so a fresh window always starts from zero. There is no carry-over
// and no sliding window.
//
// Rate limiting here is a best-effort abuse throttle, not a security
// boundary: any store failure fails open rather than blocking legitimate
// traffic, and two racing requests near the cap may both be admitted (the
// read and the increment are separate round trips).
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/SACHINKATHAR2005/viralprompts/internal/kv"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
)

// Counters is the subset of the kv store the limiter depends on.
// Satisfied by [kv.Store]; faked in tests.
type Counters interface {
	GetInt(ctx context.Context, key string) (int64, error)
	IncrWithExpire(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, keys ...string) error
}

// Result is the outcome of a limit check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Limit is the window budget the check ran against.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is the instant the current window ends and the counter
	// vanishes.
	ResetAt time.Time
}

// Limiter enforces named fixed-window caps per principal.
type Limiter struct {
	counters Counters
	logger   *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewLimiter constructs a [Limiter] over the given counter store.
func NewLimiter(counters Counters, log *logger.Logger) *Limiter {
	return &Limiter{
		counters: counters,
		logger:   log,
		now:      time.Now,
	}
}

// Allow runs one fixed-window check-and-consume for the named action and
// principal (user ID, or client IP when unauthenticated).
//
// Window anchoring: windowStart = floor(now/window)*window, so every
// concurrent request in the same window computes the same counter key.
// Under the cap the counter is incremented and its expiry set to the
// window length; at or over the cap the request is rejected with ResetAt
// pointing at the next window boundary.
//
// Fail-open: any store error (including the typed not-connected state)
// results in an allowed request with a full remaining budget. The error is
// logged and never surfaces to the caller.
func (l *Limiter) Allow(ctx context.Context, action, principal string, limit int, window time.Duration) Result {
	windowStart := l.now().Truncate(window)
	resetAt := windowStart.Add(window)
	key := windowKey(action, principal, windowStart)

	count, err := l.counters.GetInt(ctx, key)
	if err != nil && err != kv.ErrKeyNotFound {
		return l.failOpen(action, err, limit, resetAt)
	}

	if count >= int64(limit) {
		return Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt}
	}

	count, err = l.counters.IncrWithExpire(ctx, key, window)
	if err != nil {
		return l.failOpen(action, err, limit, resetAt)
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{Allowed: true, Limit: limit, Remaining: remaining, ResetAt: resetAt}
}

// Reset drops the current window counter for the given action and
// principal. Used by the admin endpoint; natural expiry handles everything
// else.
func (l *Limiter) Reset(ctx context.Context, action, principal string, window time.Duration) error {
	windowStart := l.now().Truncate(window)
	return l.counters.Delete(ctx, windowKey(action, principal, windowStart))
}

func (l *Limiter) failOpen(action string, err error, limit int, resetAt time.Time) Result {
	l.logger.Warn().Err(err).Str("action", action).
		Msg("rate limit store unavailable: failing open")
	return Result{Allowed: true, Limit: limit, Remaining: limit, ResetAt: resetAt}
}

// windowKey builds the counter key for one (action, principal, window)
// triple. The window start is part of the key, which is what makes the
// window fixed rather than sliding.
func windowKey(action, principal string, windowStart time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%s:%d", action, principal, windowStart.UnixMilli())
}
