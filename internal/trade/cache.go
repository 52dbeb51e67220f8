package trade

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/emberhall/bazaar/internal/domain"
)

const (
	feedCacheSize = 8
	feedCacheTTL  = 5 * time.Second
	feedCacheKey  = "public"
)

// feedCache keeps the public listing feed hot between mutations. Entries
// expire quickly so a missed invalidation only shows stale rows briefly.
type feedCache struct {
	lru *expirable.LRU[string, []domain.ListingSummary]
}

func newFeedCache() *feedCache {
	return &feedCache{
		lru: expirable.NewLRU[string, []domain.ListingSummary](feedCacheSize, nil, feedCacheTTL),
	}
}

func (c *feedCache) Get() ([]domain.ListingSummary, bool) {
	return c.lru.Get(feedCacheKey)
}

func (c *feedCache) Set(rows []domain.ListingSummary) {
	c.lru.Add(feedCacheKey, rows)
}

func (c *feedCache) Invalidate() {
	c.lru.Remove(feedCacheKey)
}
