package mock

import (
	"context"

	"github.com/fwojciec/bfchat"
)

var _ bfchat.CorpusBuilder = (*CorpusBuilder)(nil)

// CorpusBuilder is a mock implementation of bfchat.CorpusBuilder.
type CorpusBuilder struct {
	BuildCorpusFn func(ctx context.Context, seedURL string, maxPages int) (*bfchat.Corpus, error)
}

func (b *CorpusBuilder) BuildCorpus(ctx context.Context, seedURL string, maxPages int) (*bfchat.Corpus, error) {
	return b.BuildCorpusFn(ctx, seedURL, maxPages)
}
