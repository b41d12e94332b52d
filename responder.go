package bfchat

import "context"

// DeclineMessage is the reply the model is told to give when the seed
// site does not cover the question.
const DeclineMessage = "Je ne peux pas répondre à cette question en utilisant les informations fournies."

// Responder answers user questions with a hosted language model.
type Responder interface {
	// Answer returns the model's reply to question. The corpus, when not
	// nil, is given to the model as context.
	// Returns EINVALID for an empty question and EUNAVAILABLE when the
	// model cannot be reached.
	Answer(ctx context.Context, question string, corpus *Corpus) (string, error)
}
