// Package memo caches generators derived from memoizable value spaces.
package memo

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"propcheck/telemetry"
)

// Cache maps derivation keys to derived generators. Concurrent derivations
// of the same key run once.
type Cache struct {
	cache        *cache.Cache
	singleflight singleflight.Group
}

// New creates a cache whose entries expire after ttl. A ttl of zero keeps
// entries until Flush.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return &Cache{cache: cache.New(cache.NoExpiration, 0)}
	}
	return &Cache{cache: cache.New(ttl, 2*ttl)}
}

// GetOrDerive returns the cached value for key, deriving and storing it on a
// miss. Failed derivations are not cached.
func (c *Cache) GetOrDerive(key string, derive func() (any, error)) (any, error) {
	if v, ok := c.cache.Get(key); ok {
		telemetry.CacheLookups.WithLabelValues("hit").Inc()
		return v, nil
	}
	telemetry.CacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := c.singleflight.Do(key, derive)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, v, cache.DefaultExpiration)
	return v, nil
}

// Lookup is the typed form of GetOrDerive. A nil cache always derives.
func Lookup[T any](c *Cache, key string, derive func() (T, error)) (T, error) {
	if c == nil {
		return derive()
	}
	v, err := c.GetOrDerive(key, func() (any, error) { return derive() })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Len returns the number of cached entries, including expired ones not yet
// cleaned up.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.cache.Flush()
}
