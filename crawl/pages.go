package crawl

import (
	"context"

	"github.com/fwojciec/bfchat"
)

// Ensure PageFetcher implements bfchat.PageFetcher at compile time.
var _ bfchat.PageFetcher = (*PageFetcher)(nil)

// PageFetcher fetches a URL once and extracts both its text and its links
// from the same parse. Successful results are remembered in the cache, so
// a repeated URL costs neither a request nor an extraction.
type PageFetcher struct {
	fetcher   bfchat.Fetcher
	extractor bfchat.Extractor
	cache     bfchat.PageCache
}

// NewPageFetcher creates a PageFetcher. A nil cache disables caching.
func NewPageFetcher(fetcher bfchat.Fetcher, extractor bfchat.Extractor, cache bfchat.PageCache) *PageFetcher {
	return &PageFetcher{
		fetcher:   fetcher,
		extractor: extractor,
		cache:     cache,
	}
}

// Cache returns the cache owned by the fetcher, or nil.
func (p *PageFetcher) Cache() bfchat.PageCache {
	return p.cache
}

// FetchPage returns the parsed page at url. Failures are not cached.
func (p *PageFetcher) FetchPage(ctx context.Context, url string) (*bfchat.Page, error) {
	if p.cache != nil {
		if page, ok := p.cache.Get(url); ok {
			return page, nil
		}
	}

	html, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &bfchat.FetchError{URL: url, Err: err}
	}

	extracted, err := p.extractor.Extract(html)
	if err != nil {
		return nil, &bfchat.FetchError{URL: url, Err: err}
	}

	page := &bfchat.Page{
		URL:   url,
		Text:  extracted.Text,
		Links: extracted.Links,
	}
	if p.cache != nil {
		p.cache.Put(page)
	}
	return page, nil
}
