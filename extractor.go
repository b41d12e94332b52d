package bfchat

// Extraction holds the readable text and outbound hrefs of one HTML page.
type Extraction struct {
	// Text is the content of every paragraph, list item and h1-h6 heading,
	// in document order, joined with single spaces.
	Text string

	// Links are the raw href values of every anchor, in document order.
	// They are not resolved against the page URL.
	Links []string
}

// Extractor parses HTML into text and links.
type Extractor interface {
	// Extract parses html. A page without matching elements yields an
	// empty Text and no error.
	Extract(html string) (*Extraction, error)
}
