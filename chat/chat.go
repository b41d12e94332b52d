// Package chat runs chat sessions: it keeps transcripts through a
// SessionService and turns questions into answers through a Responder.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/fwojciec/bfchat"
)

// Greeting is the assistant message every session starts with.
const Greeting = "Bonjour ! Posez votre question sur l'allaitement basée sur le site de La Leche League France."

// FallbackMessage is the assistant reply recorded when no answer could be
// generated.
const FallbackMessage = "Désolé, je n'ai pas pu générer de réponse. Veuillez réessayer."

// Conversation manages chat sessions. Responder failures never end a
// session: they are logged and answered with FallbackMessage.
type Conversation struct {
	Sessions  bfchat.SessionService
	Responder bfchat.Responder
	Logger    *slog.Logger

	mu      sync.Mutex
	corpora map[string]*bfchat.Corpus
}

// NewConversation creates a Conversation.
func NewConversation(sessions bfchat.SessionService, responder bfchat.Responder, logger *slog.Logger) *Conversation {
	return &Conversation{
		Sessions:  sessions,
		Responder: responder,
		Logger:    logger,
		corpora:   make(map[string]*bfchat.Corpus),
	}
}

// Start creates a session for seedURL opened by the greeting. corpus may be
// nil; otherwise it is passed to the Responder for every question of the
// session.
func (c *Conversation) Start(ctx context.Context, seedURL string, corpus *bfchat.Corpus) (*bfchat.Session, error) {
	session := &bfchat.Session{
		SeedURL: seedURL,
		Messages: []*bfchat.Message{
			{Role: bfchat.RoleAssistant, Content: Greeting},
		},
	}
	if err := c.Sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	if corpus != nil {
		c.mu.Lock()
		if c.corpora == nil {
			c.corpora = make(map[string]*bfchat.Corpus)
		}
		c.corpora[session.ID] = corpus
		c.mu.Unlock()
	}

	c.logger().Debug("session started", "session", session.ID, "context_pages", corpus.Len())
	return session, nil
}

// Ask records question in the session transcript and returns the recorded
// assistant reply.
func (c *Conversation) Ask(ctx context.Context, sessionID, question string) (*bfchat.Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, bfchat.Errorf(bfchat.EINVALID, "question required")
	}

	if err := c.Sessions.AppendMessage(ctx, &bfchat.Message{
		SessionID: sessionID,
		Role:      bfchat.RoleUser,
		Content:   question,
	}); err != nil {
		return nil, err
	}

	c.mu.Lock()
	corpus := c.corpora[sessionID]
	c.mu.Unlock()

	answer, err := c.Responder.Answer(ctx, question, corpus)
	if err != nil {
		c.logger().Error("answer failed",
			"session", sessionID,
			"code", bfchat.ErrorCode(err),
			"err", err,
		)
		answer = FallbackMessage
	}

	reply := &bfchat.Message{
		SessionID: sessionID,
		Role:      bfchat.RoleAssistant,
		Content:   answer,
	}
	if err := c.Sessions.AppendMessage(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// History returns the session with its full transcript.
func (c *Conversation) History(ctx context.Context, sessionID string) (*bfchat.Session, error) {
	return c.Sessions.FindSessionByID(ctx, sessionID)
}

// End deletes the session and releases its corpus.
func (c *Conversation) End(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	delete(c.corpora, sessionID)
	c.mu.Unlock()

	if err := c.Sessions.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	c.logger().Debug("session ended", "session", sessionID)
	return nil
}

func (c *Conversation) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
