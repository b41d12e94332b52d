package crawl

import (
	"math"

	"github.com/fwojciec/bfchat"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Compile-time interface verification.
var _ bfchat.PageCache = (*Cache)(nil)

// Cache is an in-memory PageCache keyed by URL. With a capacity of zero it
// is unbounded; otherwise the least recently used page is evicted when a
// new page would exceed the capacity.
// It is safe for concurrent use by multiple goroutines.
type Cache struct {
	pages *lru.Cache[string, *bfchat.Page]
}

// NewCache creates a Cache holding at most capacity pages.
// A capacity of zero or less means unbounded.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = math.MaxInt
	}
	// lru.New only fails for a non-positive size.
	pages, _ := lru.New[string, *bfchat.Page](capacity)
	return &Cache{pages: pages}
}

// Get returns the cached page for url and marks it as recently used.
func (c *Cache) Get(url string) (*bfchat.Page, bool) {
	return c.pages.Get(url)
}

// Put stores page under page.URL, replacing any previous entry.
func (c *Cache) Put(page *bfchat.Page) {
	c.pages.Add(page.URL, page)
}

// Len returns the number of cached pages.
func (c *Cache) Len() int {
	return c.pages.Len()
}

// Clear drops every cached page.
func (c *Cache) Clear() {
	c.pages.Purge()
}
