package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ListingCache holds rendered public listings (announcements, calendar)
// between writes.
type ListingCache struct {
	cache *cache.Cache
}

func NewListingCache(ttl time.Duration) *ListingCache {
	return &ListingCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *ListingCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *ListingCache) Set(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

// Invalidate drops every cached listing. Writes are rare so there is no
// per-key bookkeeping.
func (c *ListingCache) Invalidate() {
	c.cache.Flush()
}
