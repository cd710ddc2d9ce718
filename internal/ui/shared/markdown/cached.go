package markdown

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/zjrosen/daybook/internal/cachemanager"
)

// CacheKey identifies one rendering of a body at a width and style.
type CacheKey string

// KeyFor builds the cache key for body rendered by r.
func KeyFor(r *Renderer, body string) CacheKey {
	h := fnv.New64a()
	_, _ = h.Write([]byte(body))
	return CacheKey(r.style + ":" + strconv.Itoa(r.width) + ":" + strconv.FormatUint(h.Sum64(), 16))
}

// CachedRenderer renders through a cache keyed on body, width and style.
type CachedRenderer struct {
	renderer *Renderer
	cache    cachemanager.CacheManager[CacheKey, string]
	reader   *cachemanager.ReadThroughCache[CacheKey, string, string]
	ttl      time.Duration
}

// NewCached wraps r with cache. Pending entries that never change again
// expire after ttl.
func NewCached(r *Renderer, cache cachemanager.CacheManager[CacheKey, string], ttl time.Duration) *CachedRenderer {
	c := &CachedRenderer{renderer: r, cache: cache, ttl: ttl}
	c.reader = cachemanager.NewReadThroughCache[CacheKey, string, string](
		cache,
		func(_ context.Context, body string) (string, error) {
			return c.renderer.Render(body)
		},
		false,
	)
	return c
}

// Render returns the cached rendering of body, rendering it on a miss.
func (c *CachedRenderer) Render(ctx context.Context, body string) (string, error) {
	return c.reader.GetWithRefresh(ctx, KeyFor(c.renderer, body), body, c.ttl)
}

// Resize swaps in a renderer for width. Cached renderings at other widths
// are left to expire.
func (c *CachedRenderer) Resize(width int) error {
	if width == c.renderer.width {
		return nil
	}
	r, err := New(width, c.renderer.style)
	if err != nil {
		return err
	}
	c.renderer = r
	return nil
}

// Width returns the current word wrap width.
func (c *CachedRenderer) Width() int {
	return c.renderer.width
}

// Invalidate drops every cached rendering.
func (c *CachedRenderer) Invalidate(ctx context.Context) error {
	return c.cache.Flush(ctx)
}
