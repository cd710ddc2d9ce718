// Package cachemanager provides typed caches over go-cache. The timeline
// keeps rendered markdown here so redraws skip glamour.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed key/value cache with per-item expiry.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
	Len() int
}
