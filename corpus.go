package bfchat

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMaxPages is the default page budget of a corpus build.
const DefaultMaxPages = 100

// CorpusEntry is the text extracted from one visited page.
type CorpusEntry struct {
	URL  string `json:"url"`
	Text string `json:"text"`
	Hash string `json:"hash"`
}

// Corpus is the result of one crawl of a seed site.
type Corpus struct {
	SeedURL string `json:"seedUrl"`

	// Entries holds the non-empty page texts in visitation order.
	Entries []CorpusEntry `json:"entries"`

	// Links holds every URL visited or enqueued, in discovery order.
	Links []string `json:"links"`

	// Warnings holds the pages that could not be fetched.
	Warnings []*FetchError `json:"warnings"`

	// Visited is the number of distinct pages visited.
	Visited int `json:"visited"`
}

// Text returns the aggregated corpus text, each entry prefixed with its
// source URL.
func (c *Corpus) Text() string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	for _, e := range c.Entries {
		fmt.Fprintf(&sb, "Contenu de %s: %s\n\n", e.URL, e.Text)
	}
	return sb.String()
}

// Len returns the number of entries in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// CorpusBuilder crawls a site to build a Corpus.
type CorpusBuilder interface {
	// BuildCorpus crawls breadth-first from seedURL, visiting at most
	// maxPages distinct URLs. Per-page failures do not abort the crawl.
	BuildCorpus(ctx context.Context, seedURL string, maxPages int) (*Corpus, error)
}
