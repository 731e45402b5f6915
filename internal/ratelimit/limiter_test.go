package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SACHINKATHAR2005/viralprompts/internal/kv"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
)

// fakeCounters is an in-memory stand-in for the Redis counter store.
type fakeCounters struct {
	counts map[string]int64
	ttls   map[string]time.Duration
	err    error
}

func newFakeCounters() *fakeCounters {
	return &fakeCounters{
		counts: make(map[string]int64),
		ttls:   make(map[string]time.Duration),
	}
}

func (f *fakeCounters) GetInt(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	count, ok := f.counts[key]
	if !ok {
		return 0, kv.ErrKeyNotFound
	}
	return count, nil
}

func (f *fakeCounters) IncrWithExpire(_ context.Context, key string, ttl time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	if f.counts[key] == 1 {
		f.ttls[key] = ttl
	}
	return f.counts[key], nil
}

func (f *fakeCounters) Delete(_ context.Context, keys ...string) error {
	if f.err != nil {
		return f.err
	}
	for _, key := range keys {
		delete(f.counts, key)
		delete(f.ttls, key)
	}
	return nil
}

func newTestLimiter(counters Counters) *Limiter {
	l := NewLimiter(counters, logger.Nop())
	// Pin the clock mid-window so every Allow call lands in the same window.
	now := time.Date(2026, 3, 14, 10, 30, 17, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l
}

func TestAllow_FixedWindow(t *testing.T) {
	counters := newFakeCounters()
	limiter := newTestLimiter(counters)
	ctx := context.Background()
	window := time.Minute

	for i := 0; i < 3; i++ {
		result := limiter.Allow(ctx, "social", "user:42", 3, window)
		require.True(t, result.Allowed, "request %d should be admitted", i+1)
		assert.Equal(t, 3, result.Limit)
		assert.Equal(t, 2-i, result.Remaining)
	}

	// Fourth request in the same window is rejected.
	result := limiter.Allow(ctx, "social", "user:42", 3, window)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, limiter.now().Truncate(window).Add(window), result.ResetAt)
}

func TestAllow_WindowReset(t *testing.T) {
	counters := newFakeCounters()
	limiter := newTestLimiter(counters)
	ctx := context.Background()
	window := time.Minute

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow(ctx, "social", "user:42", 3, window).Allowed)
	}
	require.False(t, limiter.Allow(ctx, "social", "user:42", 3, window).Allowed)

	// Advance the clock past the window boundary: a new counter key is
	// used, so the budget is fresh. No carry-over from the old window.
	base := limiter.now()
	limiter.now = func() time.Time { return base.Add(window) }

	result := limiter.Allow(ctx, "social", "user:42", 3, window)
	assert.True(t, result.Allowed)
	assert.Equal(t, 2, result.Remaining)
}

func TestAllow_PrincipalsAreIndependent(t *testing.T) {
	counters := newFakeCounters()
	limiter := newTestLimiter(counters)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow(ctx, "social", "user:1", 3, time.Minute).Allowed)
	}
	require.False(t, limiter.Allow(ctx, "social", "user:1", 3, time.Minute).Allowed)

	// A different principal and a different action still have full budgets.
	assert.True(t, limiter.Allow(ctx, "social", "user:2", 3, time.Minute).Allowed)
	assert.True(t, limiter.Allow(ctx, "comment", "user:1", 3, time.Minute).Allowed)
}

func TestAllow_FailOpenOnStoreError(t *testing.T) {
	counters := newFakeCounters()
	counters.err = errors.New("connection refused")
	limiter := newTestLimiter(counters)

	result := limiter.Allow(context.Background(), "social", "user:42", 3, time.Minute)
	assert.True(t, result.Allowed)
	assert.Equal(t, 3, result.Remaining)
}

func TestAllow_FailOpenWhenNotConnected(t *testing.T) {
	counters := newFakeCounters()
	counters.err = kv.ErrNotConnected
	limiter := newTestLimiter(counters)

	result := limiter.Allow(context.Background(), "social", "user:42", 3, time.Minute)
	assert.True(t, result.Allowed)
}

func TestAllow_ExpirySetOnFirstRequestOnly(t *testing.T) {
	counters := newFakeCounters()
	limiter := newTestLimiter(counters)
	ctx := context.Background()
	window := 5 * time.Minute

	limiter.Allow(ctx, "comment", "user:7", 10, window)
	limiter.Allow(ctx, "comment", "user:7", 10, window)

	key := windowKey("comment", "user:7", limiter.now().Truncate(window))
	assert.Equal(t, window, counters.ttls[key])
}

func TestReset(t *testing.T) {
	counters := newFakeCounters()
	limiter := newTestLimiter(counters)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.True(t, limiter.Allow(ctx, "auth", "ip:1.2.3.4", 3, time.Minute).Allowed)
	}
	require.False(t, limiter.Allow(ctx, "auth", "ip:1.2.3.4", 3, time.Minute).Allowed)

	require.NoError(t, limiter.Reset(ctx, "auth", "ip:1.2.3.4", time.Minute))

	assert.True(t, limiter.Allow(ctx, "auth", "ip:1.2.3.4", 3, time.Minute).Allowed)
}
