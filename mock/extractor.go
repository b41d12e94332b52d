package mock

import "github.com/fwojciec/bfchat"

var _ bfchat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of bfchat.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*bfchat.Extraction, error)
}

func (e *Extractor) Extract(html string) (*bfchat.Extraction, error) {
	return e.ExtractFn(html)
}
