package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/bfchat"
	"github.com/fwojciec/bfchat/crawl"
)

// urlWidth is the display width of URLs in progress lines.
const urlWidth = 60

// progressPrinter reports crawl progress on w.
func progressPrinter(w io.Writer) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(w, "Crawling %s (up to %d pages)\n", event.URL, event.Max)
		case crawl.ProgressCompleted:
			fmt.Fprintf(w, "  [%d/%d] %s\n", event.Visited, event.Max, crawl.TruncateURL(event.URL, urlWidth))
		case crawl.ProgressFailed:
			fmt.Fprintf(w, "  [%d/%d] skip %s: %v\n", event.Visited, event.Max, crawl.TruncateURL(event.URL, urlWidth), event.Error)
		case crawl.ProgressFinished:
			// Summary printed by the command
		}
	}
}

// buildCorpus crawls the configured seed site. A partial corpus is
// returned along with any error.
func buildCorpus(deps *Dependencies, maxPages int) (*bfchat.Corpus, error) {
	corpus, err := deps.Builder.BuildCorpus(deps.Ctx, deps.Config.SeedURL, maxPages)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(deps.Stderr, "crawl interrupted, %d pages with text kept\n", corpus.Len())
	default:
		fmt.Fprintf(deps.Stderr, "error crawling: %s\n", bfchat.ErrorMessage(err))
	}
	return corpus, err
}
