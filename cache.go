package blogfront

import (
	"context"
	"sync"
	"time"

	"github.com/iu-gakuyukai/blogfront/cms"
)

// categoryLister is the slice of the CMS client the cache needs.
type categoryLister interface {
	ListCategories(ctx context.Context) ([]cms.Category, error)
}

// categoryCache is an in-memory TTL cache of the CMS category list.
// The header navigation renders on every page, so the list is fetched
// once per TTL instead of once per request.
type categoryCache struct {
	mu      sync.RWMutex
	cats    []cms.Category
	fetched time.Time
	ttl     time.Duration
	cms     categoryLister
}

func newCategoryCache(c categoryLister, ttl time.Duration) *categoryCache {
	return &categoryCache{cms: c, ttl: ttl}
}

func (c *categoryCache) valid() bool {
	return c.cats != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *categoryCache) Invalidate() {
	c.mu.Lock()
	c.cats = nil
	c.mu.Unlock()
}

// List returns the cached categories, reloading from the CMS when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *categoryCache) List(ctx context.Context) ([]cms.Category, error) {
	c.mu.RLock()
	if c.valid() {
		cats := c.cats
		c.mu.RUnlock()
		return cats, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.cats, nil
	}
	cats, err := c.cms.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []cms.Category{}
	}
	c.cats = cats
	c.fetched = time.Now()
	return c.cats, nil
}
