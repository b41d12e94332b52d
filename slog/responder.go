package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bfchat"
)

// Ensure LoggingResponder implements bfchat.Responder.
var _ bfchat.Responder = (*LoggingResponder)(nil)

// LoggingResponder wraps a Responder with logging. Question text is not
// logged.
type LoggingResponder struct {
	next   bfchat.Responder
	logger *slog.Logger
}

// NewLoggingResponder creates a new LoggingResponder.
func NewLoggingResponder(next bfchat.Responder, logger *slog.Logger) *LoggingResponder {
	return &LoggingResponder{next: next, logger: logger}
}

// Answer delegates to the wrapped responder and logs the operation.
func (r *LoggingResponder) Answer(ctx context.Context, question string, corpus *bfchat.Corpus) (answer string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("answer",
			"question_bytes", len(question),
			"context_pages", corpus.Len(),
			"answer_bytes", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Answer(ctx, question, corpus)
}
