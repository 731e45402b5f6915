package cache

import (
	"context"
	"errors"
	"net/url"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SACHINKATHAR2005/viralprompts/internal/kv"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
)

// fakeEntries is an in-memory stand-in for the Redis cache store.
type fakeEntries struct {
	values map[string][]byte
	err    error
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{values: make(map[string][]byte)}
}

func (f *fakeEntries) Get(_ context.Context, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.values[key]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return value, nil
}

func (f *fakeEntries) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func (f *fakeEntries) Delete(_ context.Context, keys ...string) error {
	if f.err != nil {
		return f.err
	}
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeEntries) DeletePattern(_ context.Context, pattern string) error {
	if f.err != nil {
		return f.err
	}
	for key := range f.values {
		if ok, _ := path.Match(pattern, key); ok {
			delete(f.values, key)
		}
	}
	return nil
}

func TestCache_HitMiss(t *testing.T) {
	entries := newFakeEntries()
	c := NewCache(entries, time.Minute, logger.Nop())
	ctx := context.Background()

	_, hit := c.Get(ctx, "cache:prompt:abc")
	assert.False(t, hit)

	c.Set(ctx, "cache:prompt:abc", []byte(`{"id":"abc"}`))

	value, hit := c.Get(ctx, "cache:prompt:abc")
	require.True(t, hit)
	assert.Equal(t, []byte(`{"id":"abc"}`), value)
}

func TestCache_FailOpen(t *testing.T) {
	entries := newFakeEntries()
	entries.err = errors.New("connection refused")
	c := NewCache(entries, time.Minute, logger.Nop())
	ctx := context.Background()

	// Reads degrade to misses; writes and invalidations are silent no-ops.
	_, hit := c.Get(ctx, "cache:prompt:abc")
	assert.False(t, hit)
	c.Set(ctx, "cache:prompt:abc", []byte("x"))
	c.Invalidate(ctx, []string{"cache:prompt:abc"}, []string{PatternPrompts})
}

func TestCache_NotConnectedIsAMiss(t *testing.T) {
	entries := newFakeEntries()
	entries.err = kv.ErrNotConnected
	c := NewCache(entries, time.Minute, logger.Nop())

	_, hit := c.Get(context.Background(), "cache:prompt:abc")
	assert.False(t, hit)
}

func TestCache_Invalidate(t *testing.T) {
	entries := newFakeEntries()
	c := NewCache(entries, time.Minute, logger.Nop())
	ctx := context.Background()

	c.Set(ctx, KeyPrompt("p1"), []byte("detail"))
	c.Set(ctx, "cache:resp:/api/prompts?limit=20", []byte("page1"))
	c.Set(ctx, "cache:resp:/api/prompts?limit=20&offset=20", []byte("page2"))
	c.Set(ctx, KeyUser(7), []byte("user"))

	c.Invalidate(ctx, []string{KeyPrompt("p1")}, []string{PatternPromptLists})

	_, hit := c.Get(ctx, KeyPrompt("p1"))
	assert.False(t, hit)
	_, hit = c.Get(ctx, "cache:resp:/api/prompts?limit=20")
	assert.False(t, hit)
	_, hit = c.Get(ctx, "cache:resp:/api/prompts?limit=20&offset=20")
	assert.False(t, hit)

	// Unrelated entries survive.
	_, hit = c.Get(ctx, KeyUser(7))
	assert.True(t, hit)
}

func TestKeyRequest_Deterministic(t *testing.T) {
	a := KeyRequest("/api/prompts", url.Values{"category": {"coding"}, "limit": {"20"}}, 0)
	b := KeyRequest("/api/prompts", url.Values{"limit": {"20"}, "category": {"coding"}}, 0)
	assert.Equal(t, a, b)

	// Principal namespacing separates personalized entries.
	c := KeyRequest("/api/prompts", url.Values{"limit": {"20"}}, 42)
	d := KeyRequest("/api/prompts", url.Values{"limit": {"20"}}, 0)
	assert.NotEqual(t, c, d)
}
