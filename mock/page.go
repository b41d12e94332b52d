package mock

import (
	"context"

	"github.com/fwojciec/bfchat"
)

var _ bfchat.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of bfchat.PageFetcher.
type PageFetcher struct {
	FetchPageFn func(ctx context.Context, url string) (*bfchat.Page, error)
}

func (f *PageFetcher) FetchPage(ctx context.Context, url string) (*bfchat.Page, error) {
	return f.FetchPageFn(ctx, url)
}

var _ bfchat.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of bfchat.PageCache.
type PageCache struct {
	GetFn   func(url string) (*bfchat.Page, bool)
	PutFn   func(page *bfchat.Page)
	LenFn   func() int
	ClearFn func()
}

func (c *PageCache) Get(url string) (*bfchat.Page, bool) {
	return c.GetFn(url)
}

func (c *PageCache) Put(page *bfchat.Page) {
	c.PutFn(page)
}

func (c *PageCache) Len() int {
	return c.LenFn()
}

func (c *PageCache) Clear() {
	c.ClearFn()
}
