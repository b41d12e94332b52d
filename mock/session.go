package mock

import (
	"context"

	"github.com/fwojciec/bfchat"
)

var _ bfchat.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of bfchat.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, session *bfchat.Session) error
	FindSessionByIDFn func(ctx context.Context, id string) (*bfchat.Session, error)
	AppendMessageFn   func(ctx context.Context, msg *bfchat.Message) error
	DeleteSessionFn   func(ctx context.Context, id string) error
}

func (s *SessionService) CreateSession(ctx context.Context, session *bfchat.Session) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*bfchat.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionService) AppendMessage(ctx context.Context, msg *bfchat.Message) error {
	return s.AppendMessageFn(ctx, msg)
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}
