package bfchat

import "context"

// TokenCounter counts the model tokens a text would use as prompt context.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
