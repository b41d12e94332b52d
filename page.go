package bfchat

import "context"

// Page is a fetched and parsed web page.
type Page struct {
	URL   string
	Text  string
	Links []string
}

// PageFetcher retrieves a page and extracts its text and links in one pass.
type PageFetcher interface {
	// FetchPage returns the parsed page at url.
	// Failures are always reported as *FetchError.
	FetchPage(ctx context.Context, url string) (*Page, error)
}

// PageCache remembers parsed pages by URL.
type PageCache interface {
	// Get returns the cached page for url, if any.
	Get(url string) (*Page, bool)

	// Put stores page under page.URL.
	Put(page *Page)

	// Len returns the number of cached pages.
	Len() int

	// Clear drops every cached page.
	Clear()
}
