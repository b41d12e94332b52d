package mock

import (
	"context"

	"github.com/fwojciec/bfchat"
)

var _ bfchat.Responder = (*Responder)(nil)

// Responder is a mock implementation of bfchat.Responder.
type Responder struct {
	AnswerFn func(ctx context.Context, question string, corpus *bfchat.Corpus) (string, error)
}

func (r *Responder) Answer(ctx context.Context, question string, corpus *bfchat.Corpus) (string, error) {
	return r.AnswerFn(ctx, question, corpus)
}
