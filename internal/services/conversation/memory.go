package conversation

import (
	"context"
	"sync"
)

// MemoryStore keeps histories in process memory, bounded per session: once a
// session exceeds maxTurns, the oldest turns are evicted. Each session has its
// own lock so concurrent sessions proceed independently.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	maxTurns int
}

type memorySession struct {
	mu    sync.Mutex
	turns []Message
}

func NewMemoryStore(maxTurns int) *MemoryStore {
	if maxTurns <= 0 {
		maxTurns = 50
	}
	return &MemoryStore{
		sessions: make(map[string]*memorySession),
		maxTurns: maxTurns,
	}
}

func (s *MemoryStore) session(sessionID string) *memorySession {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; !ok {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}
	return sess
}

func (s *MemoryStore) Append(ctx context.Context, sessionID string, msgs ...Message) error {
	if sessionID == "" {
		return ErrInvalidSession
	}

	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns, msgs...)
	if over := len(sess.turns) - s.maxTurns; over > 0 {
		sess.turns = append([]Message(nil), sess.turns[over:]...)
	}
	return nil
}

func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]Message, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
