package gemini

import (
	"context"

	"github.com/fwojciec/bfchat"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ bfchat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates prompt size locally with the Gemini tokenizer,
// without calling the API.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the number of tokens text uses as a user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
