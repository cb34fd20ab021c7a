// Package listcache caches list responses and lets writers invalidate them.
// Every cached key embeds a generation stamp kept in the same store, a write
// moves the stamp and with it every list cached for that resource.
package listcache

import (
	"strconv"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Generations outlive every cached page so a stamp never resets while pages keyed by it are alive
const generationTTL = 24 * time.Hour

type Cache struct {
	store persist.CacheStore
	ttl   time.Duration
	now   func() time.Time
}

// New returns nil, a disabled cache, when store is nil or ttl isn't positive
func New(store persist.CacheStore, ttl time.Duration) *Cache {
	if store == nil || ttl <= 0 {
		return nil
	}

	return &Cache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Middleware serves GET responses for resource from the cache, keyed by request URI
func (l *Cache) Middleware(resource string) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return cache.Cache(l.store, l.ttl, cache.WithCacheStrategyByRequest(func(c *gin.Context) (bool, cache.Strategy) {
		return true, cache.Strategy{
			CacheKey:      l.key(resource, c.Request.RequestURI),
			CacheStore:    l.store,
			CacheDuration: l.ttl,
		}
	}))
}

// Invalidate drops every cached list of resource. Safe to call on a nil Cache.
func (l *Cache) Invalidate(resource string) {
	if l == nil {
		return
	}

	// Clock based so separate processes sharing a store agree, and always moving forward
	gen := max(l.now().UnixNano(), l.generation(resource)+1)
	if err := l.store.Set(generationKey(resource), gen, generationTTL); err != nil {
		zap.L().Warn("Failed to invalidate list cache", zap.String("resource", resource), zap.Error(err))
	}
}

func (l *Cache) key(resource, uri string) string {
	return "list:" + resource + ":" + strconv.FormatInt(l.generation(resource), 10) + ":" + uri
}

// generation is 0 until the first write
func (l *Cache) generation(resource string) int64 {
	var gen int64
	_ = l.store.Get(generationKey(resource), &gen)
	return gen
}

func generationKey(resource string) string {
	return "list-generation:" + resource
}
