package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bfchat"
)

// Ensure LoggingPageFetcher implements bfchat.PageFetcher.
var _ bfchat.PageFetcher = (*LoggingPageFetcher)(nil)

// LoggingPageFetcher wraps a PageFetcher with debug logging.
type LoggingPageFetcher struct {
	next   bfchat.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next bfchat.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// FetchPage delegates to the wrapped page fetcher and logs the operation.
func (f *LoggingPageFetcher) FetchPage(ctx context.Context, url string) (page *bfchat.Page, err error) {
	defer func(begin time.Time) {
		var text, links int
		if page != nil {
			text, links = len(page.Text), len(page.Links)
		}
		f.logger.Debug("fetch page",
			"url", url,
			"bytes", text,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchPage(ctx, url)
}
