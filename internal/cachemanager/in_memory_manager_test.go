package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type renderKey string

func newTestCache() *InMemoryCacheManager[renderKey, string] {
	return NewInMemoryCacheManager[renderKey, string]("render", DefaultExpiration, DefaultCleanupInterval)
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()

	cache.Set(ctx, "80:abc", "rendered", DefaultExpiration)

	got, ok := cache.Get(ctx, "80:abc")
	require.True(t, ok)
	require.Equal(t, "rendered", got)
	require.Equal(t, 1, cache.Len())
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	got, ok := newTestCache().Get(context.Background(), "missing")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_WrongStoredType(t *testing.T) {
	cache := newTestCache()
	cache.cache.Set("80:abc", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "80:abc")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()

	cache.Set(ctx, "short", "v", 20*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, "short")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()

	cache.Set(ctx, "k", "v", 50*time.Millisecond)
	got, ok := cache.GetWithRefresh(ctx, "k", time.Hour)
	require.True(t, ok)
	require.Equal(t, "v", got)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(ctx, "k")
	require.True(t, ok, "refresh extended the lifetime")

	_, ok = cache.GetWithRefresh(ctx, "absent", time.Hour)
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()
	for _, k := range []renderKey{"a", "b", "c"} {
		cache.Set(ctx, k, string(k), DefaultExpiration)
	}

	require.NoError(t, cache.Delete(ctx, "a", "b"))
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	require.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Delete(ctx))
	require.NoError(t, cache.Flush(ctx))
	require.Equal(t, 0, cache.Len())
}
