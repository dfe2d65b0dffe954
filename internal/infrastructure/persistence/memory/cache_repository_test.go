package memory

import (
	"context"
	"testing"
	"time"

	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheRepository, *time.Time) {
	t.Helper()
	current := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	cache := NewCacheRepository(0)
	cache.now = func() time.Time { return current }
	t.Cleanup(func() { _ = cache.Close() })
	return cache, &current
}

func TestCacheRepository_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "nutrition:report:a:balanced", []byte(`{"daily_calories":2104}`), time.Minute))

	got, err := cache.Get(ctx, "nutrition:report:a:balanced")
	require.NoError(t, err)
	assert.JSONEq(t, `{"daily_calories":2104}`, string(got))
}

func TestCacheRepository_MissAndExpiry(t *testing.T) {
	cache, current := newTestCache(t)
	ctx := context.Background()

	_, err := cache.Get(ctx, "absent")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "short", []byte("x"), time.Second))
	*current = current.Add(2 * time.Second)

	_, err = cache.Get(ctx, "short")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	cache.sweep()
	assert.Equal(t, 0, cache.Len())
}

func TestCacheRepository_ReturnedValueIsACopy(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, cache.Set(ctx, "k", value, time.Minute))
	value[0] = 'z'

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'z'

	again, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestCacheRepository_DeleteByPrefix(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{
		"nutrition:report:p1:balanced",
		"nutrition:report:p1:front_loaded",
		"nutrition:report:p2:balanced",
	} {
		require.NoError(t, cache.Set(ctx, key, []byte("r"), time.Minute))
	}

	require.NoError(t, cache.DeleteByPrefix(ctx, "nutrition:report:p1:"))

	_, err := cache.Get(ctx, "nutrition:report:p1:balanced")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	_, err = cache.Get(ctx, "nutrition:report:p2:balanced")
	assert.NoError(t, err)
}

func TestCacheRepository_DeleteAndClose(t *testing.T) {
	cache := NewCacheRepository(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, cache.Delete(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	assert.NoError(t, cache.Close())
	assert.NoError(t, cache.Close())
}
