package conversation

import (
	"context"
	"errors"
)

// Message is one complete turn in a conversation, immutable once created.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

var ErrInvalidSession = errors.New("session id is empty")

// Store keeps ordered per-session histories. Appends for the same session are
// serialized by the implementation; different sessions never block each other.
type Store interface {
	// Append adds whole turns to the session's history, creating it on first use.
	Append(ctx context.Context, sessionID string, msgs ...Message) error
	// History returns the session's turns in append order. A session that has
	// never been written is an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]Message, error)
	// Clear removes the session's history.
	Clear(ctx context.Context, sessionID string) error
}
