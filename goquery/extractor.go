// Package goquery implements bfchat.Extractor using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bfchat"
)

// TextSelector matches the elements whose text makes up a page's readable
// content: paragraphs, list items and headings.
const TextSelector = "p, li, h1, h2, h3, h4, h5, h6"

// Ensure Extractor implements bfchat.Extractor at compile time.
var _ bfchat.Extractor = (*Extractor)(nil)

// Extractor pulls readable text and raw hrefs out of HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses HTML and returns the text of every element matching
// TextSelector in document order, and the href of every anchor.
// Whitespace inside an element is collapsed; nested matches are each
// emitted.
func (e *Extractor) Extract(html string) (*bfchat.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bfchat.Errorf(bfchat.EINVALID, "failed to parse HTML: %v", err)
	}

	var parts []string
	doc.Find(TextSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := collapseSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href = strings.TrimSpace(href); href != "" {
			links = append(links, href)
		}
	})

	return &bfchat.Extraction{
		Text:  strings.Join(parts, " "),
		Links: links,
	}, nil
}

// collapseSpace trims s and replaces every whitespace run with one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
