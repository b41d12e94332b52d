package bfchat

import (
	"context"
	"time"
)

// Role identifies the author of a chat message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat transcript.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the message contains invalid fields.
func (m *Message) Validate() error {
	if m.SessionID == "" {
		return Errorf(EINVALID, "message session ID required")
	}
	switch m.Role {
	case RoleUser, RoleAssistant:
	default:
		return Errorf(EINVALID, "invalid message role %q", m.Role)
	}
	return nil
}

// Session is one chat conversation. It is created when a user starts
// chatting and deleted when the conversation ends.
type Session struct {
	ID        string     `json:"id"`
	SeedURL   string     `json:"seedUrl"`
	CreatedAt time.Time  `json:"createdAt"`
	Messages  []*Message `json:"messages"`
}

// Validate returns an error if the session contains invalid fields.
func (s *Session) Validate() error {
	if s.SeedURL == "" {
		return Errorf(EINVALID, "session seed URL required")
	}
	return nil
}

// SessionService represents a service for managing chat sessions.
type SessionService interface {
	// CreateSession creates a new session and assigns its ID.
	CreateSession(ctx context.Context, session *Session) error

	// FindSessionByID retrieves a session with its messages in order.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// AppendMessage adds a message to the end of a session's transcript.
	// Returns ENOTFOUND if the session does not exist.
	AppendMessage(ctx context.Context, msg *Message) error

	// DeleteSession removes a session and its transcript.
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, id string) error
}
