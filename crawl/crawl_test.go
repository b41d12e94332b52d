package crawl_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/bfchat"
	"github.com/fwojciec/bfchat/crawl"
	"github.com/fwojciec/bfchat/goquery"
	bfhttp "github.com/fwojciec/bfchat/http"
	"github.com/fwojciec/bfchat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = "https://example.org/"

// site serves pages from a map and records every URL requested.
type site struct {
	pages    map[string]*bfchat.Page
	failures map[string]error
	requests []string
}

func (s *site) fetcher() *mock.PageFetcher {
	return &mock.PageFetcher{
		FetchPageFn: func(_ context.Context, url string) (*bfchat.Page, error) {
			s.requests = append(s.requests, url)
			if err, ok := s.failures[url]; ok {
				return nil, &bfchat.FetchError{URL: url, Err: err}
			}
			if page, ok := s.pages[url]; ok {
				return page, nil
			}
			return nil, &bfchat.FetchError{URL: url, Err: errors.New("HTTP 404")}
		},
	}
}

func page(url, text string, links ...string) *bfchat.Page {
	return &bfchat.Page{URL: url, Text: text, Links: links}
}

func TestBuilder_BuildCorpus(t *testing.T) {
	t.Parallel()

	t.Run("visits pages breadth-first", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]*bfchat.Page{
			seed:                    page(seed, "accueil", "/a", "/b"),
			"https://example.org/a": page("https://example.org/a", "a", "/c"),
			"https://example.org/b": page("https://example.org/b", "b"),
			"https://example.org/c": page("https://example.org/c", "c"),
		}}
		b := &crawl.Builder{Pages: s.fetcher()}

		corpus, err := b.BuildCorpus(context.Background(), seed, 100)

		require.NoError(t, err)
		assert.Equal(t, []string{
			seed,
			"https://example.org/a",
			"https://example.org/b",
			"https://example.org/c",
		}, s.requests)
		assert.Equal(t, 4, corpus.Visited)
		assert.Equal(t, seed, corpus.SeedURL)
		require.Len(t, corpus.Entries, 4)
		assert.Equal(t, "accueil", corpus.Entries[0].Text)
		assert.Equal(t, crawl.ComputeHash("accueil"), corpus.Entries[0].Hash)
		assert.Equal(t, s.requests, corpus.Links)
	})

	t.Run("visits at most maxPages distinct URLs", func(t *testing.T) {
		t.Parallel()

		pages := map[string]*bfchat.Page{}
		for i := range 10 {
			url := fmt.Sprintf("https://example.org/p%d", i)
			pages[url] = page(url, url, fmt.Sprintf("/p%d", i+1))
		}
		pages[seed] = page(seed, "accueil", "/p0")
		s := &site{pages: pages}
		b := &crawl.Builder{Pages: s.fetcher()}

		corpus, err := b.BuildCorpus(context.Background(), seed, 3)

		require.NoError(t, err)
		assert.Len(t, s.requests, 3)
		assert.Equal(t, 3, corpus.Visited)
		assert.Len(t, corpus.Entries, 3)
	})

	t.Run("never records a URL twice on cyclic sites", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]*bfchat.Page{
			seed:                    page(seed, "accueil", "/a", seed, "/a"),
			"https://example.org/a": page("https://example.org/a", "a", "/", seed, "https://example.org/a"),
		}}
		b := &crawl.Builder{Pages: s.fetcher()}

		corpus, err := b.BuildCorpus(context.Background(), seed, 100)

		require.NoError(t, err)
		seen := map[string]bool{}
		for _, e := range corpus.Entries {
			assert.False(t, seen[e.URL], "duplicate entry for %s", e.URL)
			seen[e.URL] = true
		}
		assert.Equal(t, corpus.Visited, len(s.requests))
	})

	t.Run("seed without same-site links visits one page", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]*bfchat.Page{
			seed: page(seed, "accueil", "https://other.org/x", "#top", "mailto:a@b.c", "relative.html"),
		}}
		b := &crawl.Builder{Pages: s.fetcher()}

		corpus, err := b.BuildCorpus(context.Background(), seed, 100)

		require.NoError(t, err)
		assert.Equal(t, []string{seed}, s.requests)
		assert.Equal(t, 1, corpus.Visited)
		assert.Equal(t, []string{seed}, corpus.Links)
	})

	t.Run("does not enqueue a URL already in the queue", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]*bfchat.Page{
			seed:                    page(seed, "accueil", "/a", "https://example.org/a", "/a", "/b"),
			"https://example.org/b": page("https://example.org/b", "b", "/a"),
			"https://example.org/a": page("https://example.org/a", "a"),
		}}
		b := &crawl.Builder{Pages: s.fetcher()}

		corpus, err := b.BuildCorpus(context.Background(), seed, 100)

		require.NoError(t, err)
		assert.Equal(t, []string{seed, "https://example.org/a", "https://example.org/b"}, s.requests)
		assert.Equal(t, []string{seed, "https://example.org/a", "https://example.org/b"}, corpus.Links)
	})

	t.Run("records fetch failure and continues", func(t *testing.T) {
		t.Parallel()

		down := "https://example.org/down"
		s := &site{
			pages: map[string]*bfchat.Page{
				seed:                       page(seed, "accueil", "/down", "/next"),
				"https://example.org/next": page("https://example.org/next", "suite"),
			},
			failures: map[string]error{down: errors.New("connection reset")},
		}
		var logs bytes.Buffer
		b := &crawl.Builder{
			Pages:  s.fetcher(),
			Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		}

		corpus, err := b.BuildCorpus(context.Background(), seed, 100)

		require.NoError(t, err)
		require.Len(t, corpus.Warnings, 1)
		assert.Equal(t, down, corpus.Warnings[0].URL)
		assert.EqualError(t, corpus.Warnings[0].Err, "connection reset")
		for _, e := range corpus.Entries {
			assert.NotEqual(t, down, e.URL)
		}
		assert.Equal(t, []string{seed, down, "https://example.org/next"}, s.requests)
		assert.Equal(t, 3, corpus.Visited)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "url="+down)
	})

	t.Run("failed page consumes budget", func(t *testing.T) {
		t.Parallel()

		s := &site{
			pages:    map[string]*bfchat.Page{seed: page(seed, "accueil", "/down", "/b")},
			failures: map[string]error{"https://example.org/down": errors.New("timeout")},
		}
		b := &crawl.Builder{Pages: s.fetcher()}

		corpus, err := b.BuildCorpus(context.Background(), seed, 2)

		require.NoError(t, err)
		assert.Equal(t, 2, corpus.Visited)
		assert.Equal(t, []string{seed, "https://example.org/down"}, s.requests)
		assert.Contains(t, corpus.Links, "https://example.org/b")
	})

	t.Run("wraps plain page errors as fetch errors", func(t *testing.T) {
		t.Parallel()

		b := &crawl.Builder{Pages: &mock.PageFetcher{
			FetchPageFn: func(context.Context, string) (*bfchat.Page, error) {
				return nil, errors.New("boom")
			},
		}}

		corpus, err := b.BuildCorpus(context.Background(), seed, 5)

		require.NoError(t, err)
		require.Len(t, corpus.Warnings, 1)
		assert.Equal(t, seed, corpus.Warnings[0].URL)
	})

	t.Run("skips empty page text", func(t *testing.T) {
		t.Parallel()

		s := &site{pages: map[string]*bfchat.Page{
			seed:                    page(seed, "", "/a"),
			"https://example.org/a": page("https://example.org/a", "a"),
		}}
		b := &crawl.Builder{Pages: s.fetcher()}

		corpus, err := b.BuildCorpus(context.Background(), seed, 100)

		require.NoError(t, err)
		require.Len(t, corpus.Entries, 1)
		assert.Equal(t, "https://example.org/a", corpus.Entries[0].URL)
		assert.Equal(t, 2, corpus.Visited)
	})

	t.Run("zero budget issues no request", func(t *testing.T) {
		t.Parallel()

		b := &crawl.Builder{Pages: &mock.PageFetcher{
			FetchPageFn: func(context.Context, string) (*bfchat.Page, error) {
				t.Fatal("unexpected fetch")
				return nil, nil
			},
		}}

		corpus, err := b.BuildCorpus(context.Background(), seed, 0)

		require.NoError(t, err)
		assert.Zero(t, corpus.Visited)
		assert.Empty(t, corpus.Entries)
		assert.Empty(t, corpus.Links)
		assert.Empty(t, corpus.Text())
	})

	t.Run("rejects negative budget", func(t *testing.T) {
		t.Parallel()

		_, err := (&crawl.Builder{}).BuildCorpus(context.Background(), seed, -1)

		require.Error(t, err)
		assert.Equal(t, bfchat.EINVALID, bfchat.ErrorCode(err))
	})

	t.Run("rejects empty seed", func(t *testing.T) {
		t.Parallel()

		_, err := (&crawl.Builder{}).BuildCorpus(context.Background(), "", 10)

		require.Error(t, err)
		assert.Equal(t, "seed URL required", bfchat.ErrorMessage(err))
	})

	t.Run("stops on context cancellation with partial corpus", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		b := &crawl.Builder{Pages: &mock.PageFetcher{
			FetchPageFn: func(_ context.Context, url string) (*bfchat.Page, error) {
				cancel()
				return page(url, "accueil", "/a"), nil
			},
		}}

		corpus, err := b.BuildCorpus(ctx, seed, 100)

		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, corpus)
		assert.Equal(t, 1, corpus.Visited)
		assert.Equal(t, []string{seed, "https://example.org/a"}, corpus.Links)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		s := &site{
			pages:    map[string]*bfchat.Page{seed: page(seed, "accueil", "/down")},
			failures: map[string]error{"https://example.org/down": errors.New("timeout")},
		}
		var events []crawl.ProgressEvent
		b := &crawl.Builder{
			Pages:    s.fetcher(),
			Progress: func(e crawl.ProgressEvent) { events = append(events, e) },
		}

		_, err := b.BuildCorpus(context.Background(), seed, 10)

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 10, events[0].Max)
		assert.Equal(t, crawl.ProgressCompleted, events[1].Type)
		assert.Equal(t, seed, events[1].URL)
		assert.Equal(t, 1, events[1].Visited)
		assert.Equal(t, crawl.ProgressFailed, events[2].Type)
		assert.Equal(t, "https://example.org/down", events[2].URL)
		assert.Error(t, events[2].Error)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Visited)
	})
}

func TestBuilder_BuildCorpus_OverHTTP(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><body><h1>Accueil</h1><p>Bienvenue</p>
<a href="/about">A propos</a><a href="/missing">Perdu</a><a href="https://other.org/">Ailleurs</a></body></html>`))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>A</p><li>B</li><h2>C</h2><a href="/">Accueil</a></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	seedURL := server.URL + "/"
	b := &crawl.Builder{
		Pages: crawl.NewPageFetcher(bfhttp.NewFetcher(), goquery.NewExtractor(), crawl.NewCache(0)),
	}

	corpus, err := b.BuildCorpus(context.Background(), seedURL, 100)

	require.NoError(t, err)
	assert.Equal(t, 3, corpus.Visited)
	require.Len(t, corpus.Entries, 2)
	assert.Equal(t, "Accueil Bienvenue", corpus.Entries[0].Text)
	assert.Equal(t, server.URL+"/about", corpus.Entries[1].URL)
	assert.Equal(t, "A B C", corpus.Entries[1].Text)
	require.Len(t, corpus.Warnings, 1)
	assert.Equal(t, server.URL+"/missing", corpus.Warnings[0].URL)
	assert.Contains(t, corpus.Warnings[0].Error(), "404")
}

func TestSameSiteLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		href string
		want string
		ok   bool
	}{
		{"absolute same-site", "https://example.org/a", "https://example.org/a", true},
		{"site-relative", "/about", "https://example.org/about", true},
		{"site-relative with query", "/search?q=lait", "https://example.org/search?q=lait", true},
		{"external", "https://other.org/about", "", false},
		{"host alias", "https://lllfrance.example.org/", "", false},
		{"anchor only", "#top", "", false},
		{"relative without slash", "about.html", "", false},
		{"mailto", "mailto:info@example.org", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := crawl.SameSiteLink(seed, tt.href)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("seed without trailing slash", func(t *testing.T) {
		t.Parallel()

		got, ok := crawl.SameSiteLink("https://example.org", "/about")

		assert.True(t, ok)
		assert.Equal(t, "https://example.org/about", got)
	})
}
