package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/bfchat/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	corpus, err := buildCorpus(deps, c.MaxPages)
	if corpus == nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(corpus); encErr != nil {
			return encErr
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Visited %d pages, %d with text\n", corpus.Visited, len(corpus.Entries))
	for _, e := range corpus.Entries {
		fmt.Fprintf(deps.Stdout, "  %s  %s (%s)\n", e.Hash, e.URL, crawl.FormatBytes(len(e.Text)))
	}

	if len(corpus.Warnings) > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d pages\n", len(corpus.Warnings))
		for _, w := range corpus.Warnings {
			fmt.Fprintf(deps.Stdout, "  %s: %v\n", w.URL, w.Err)
		}
	}

	fmt.Fprintf(deps.Stdout, "Discovered %d links\n", len(corpus.Links))
	for _, link := range corpus.Links {
		fmt.Fprintf(deps.Stdout, "  %s\n", link)
	}

	text := corpus.Text()
	summary := crawl.FormatBytes(len(text))
	if deps.Tokens != nil {
		if n, tokErr := deps.Tokens.CountTokens(deps.Ctx, text); tokErr == nil {
			summary += ", " + crawl.FormatTokens(n)
		} else {
			deps.Logger.Warn("token count failed", "err", tokErr)
		}
	}
	fmt.Fprintf(deps.Stdout, "Corpus size: %s\n", summary)

	return err
}

