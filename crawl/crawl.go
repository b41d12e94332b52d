// Package crawl builds text corpora by crawling a site breadth-first.
package crawl

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fwojciec/bfchat"
)

// Ensure Builder implements bfchat.CorpusBuilder at compile time.
var _ bfchat.CorpusBuilder = (*Builder)(nil)

// Builder crawls a seed site breadth-first and aggregates the text of every
// visited page. Pages are fetched one at a time.
type Builder struct {
	Pages    bfchat.PageFetcher
	Logger   *slog.Logger
	Progress ProgressFunc
}

// ProgressEvent reports progress during a corpus build.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Visited int
	Max     int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// BuildCorpus crawls from seedURL until the queue is empty or maxPages
// distinct URLs have been visited. A page that fails to fetch still counts
// against the budget; it is recorded in Corpus.Warnings and the crawl goes
// on. If ctx is canceled the partial corpus is returned with ctx's error.
func (b *Builder) BuildCorpus(ctx context.Context, seedURL string, maxPages int) (*bfchat.Corpus, error) {
	if seedURL == "" {
		return nil, bfchat.Errorf(bfchat.EINVALID, "seed URL required")
	}
	if maxPages < 0 {
		return nil, bfchat.Errorf(bfchat.EINVALID, "max pages must not be negative, got %d", maxPages)
	}

	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f := newFrontier(seedURL)
	corpus := &bfchat.Corpus{SeedURL: seedURL}

	b.report(ProgressEvent{Type: ProgressStarted, URL: seedURL, Max: maxPages})

	var err error
	for f.Len() > 0 && f.VisitedCount() < maxPages {
		if err = ctx.Err(); err != nil {
			break
		}

		current, _ := f.Pop()
		if f.Visited(current) {
			continue
		}
		f.Visit(current)

		page, fetchErr := b.Pages.FetchPage(ctx, current)
		if fetchErr != nil {
			warning := asFetchError(current, fetchErr)
			corpus.Warnings = append(corpus.Warnings, warning)
			logger.Warn("page skipped", "url", current, "err", warning.Err)
			b.report(ProgressEvent{
				Type:    ProgressFailed,
				URL:     current,
				Visited: f.VisitedCount(),
				Max:     maxPages,
				Error:   warning,
			})
			continue
		}

		if page.Text != "" {
			corpus.Entries = append(corpus.Entries, bfchat.CorpusEntry{
				URL:  current,
				Text: page.Text,
				Hash: ComputeHash(page.Text),
			})
		}

		for _, href := range page.Links {
			if link, ok := SameSiteLink(seedURL, href); ok {
				f.Push(link)
			}
		}

		b.report(ProgressEvent{
			Type:    ProgressCompleted,
			URL:     current,
			Visited: f.VisitedCount(),
			Max:     maxPages,
		})
	}

	corpus.Links = f.Discovered()
	corpus.Visited = f.VisitedCount()

	logger.Info("corpus built",
		"seed", seedURL,
		"visited", corpus.Visited,
		"entries", len(corpus.Entries),
		"warnings", len(corpus.Warnings),
		"queued", f.Len(),
	)
	b.report(ProgressEvent{Type: ProgressFinished, Visited: corpus.Visited, Max: maxPages})

	return corpus, err
}

func (b *Builder) report(event ProgressEvent) {
	if b.Progress != nil {
		b.Progress(event)
	}
}

// SameSiteLink decides whether href found on a page belongs to the seed
// site and returns the URL to enqueue.
//
// Matching is plain string comparison, with no URL normalization: an href
// starting with seedURL is used as is, and a site-relative href starting
// with "/" is appended to seedURL (without doubling the slash). Every other
// href, including relative paths without a leading slash and links to host
// aliases of the seed, is rejected.
func SameSiteLink(seedURL, href string) (string, bool) {
	switch {
	case href == "":
		return "", false
	case strings.HasPrefix(href, seedURL):
		return href, true
	case strings.HasPrefix(href, "/") && !strings.Contains(href, seedURL):
		return strings.TrimSuffix(seedURL, "/") + href, true
	default:
		return "", false
	}
}

// asFetchError returns err as a *bfchat.FetchError for url.
func asFetchError(url string, err error) *bfchat.FetchError {
	var fe *bfchat.FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &bfchat.FetchError{URL: url, Err: err}
}
