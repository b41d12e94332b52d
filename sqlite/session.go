package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/bfchat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bfchat.SessionService = (*SessionService)(nil)

// SessionService implements bfchat.SessionService using SQLite.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession creates a new session. Messages already attached to the
// session are stored in order.
func (s *SessionService) CreateSession(ctx context.Context, session *bfchat.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	session.ID = uuid.New().String()
	session.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, seed_url, created_at)
		VALUES (?, ?, ?)
	`, session.ID, session.SeedURL, formatRFC3339(session.CreatedAt))
	if err != nil {
		return err
	}

	for _, msg := range session.Messages {
		msg.SessionID = session.ID
		if err := s.AppendMessage(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// FindSessionByID retrieves a session and its transcript.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*bfchat.Session, error) {
	var session bfchat.Session
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, created_at
		FROM sessions
		WHERE id = ?
	`, id).Scan(&session.ID, &session.SeedURL, &createdAt)

	if err == sql.ErrNoRows {
		return nil, bfchat.Errorf(bfchat.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}

	session.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	session.Messages, err = s.findMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AppendMessage adds msg after the last message of its session.
func (s *SessionService) AppendMessage(ctx context.Context, msg *bfchat.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM sessions WHERE id = ?", msg.SessionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return bfchat.Errorf(bfchat.ENOTFOUND, "session not found")
	}
	if err != nil {
		return err
	}

	msg.ID = uuid.New().String()
	msg.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, role, content, position, created_at)
		SELECT ?, ?, ?, ?, COALESCE(MAX(position), -1) + 1, ?
		FROM messages
		WHERE session_id = ?
	`, msg.ID, msg.SessionID, string(msg.Role), msg.Content, formatRFC3339(msg.CreatedAt), msg.SessionID)

	return err
}

// DeleteSession permanently removes a session and its messages.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return bfchat.Errorf(bfchat.ENOTFOUND, "session not found")
	}

	return nil
}

func (s *SessionService) findMessages(ctx context.Context, sessionID string) ([]*bfchat.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*bfchat.Message
	for rows.Next() {
		var msg bfchat.Message
		var role, createdAt string

		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Content, &createdAt); err != nil {
			return nil, err
		}
		msg.Role = bfchat.Role(role)

		msg.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}
