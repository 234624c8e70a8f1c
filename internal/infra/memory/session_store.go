package memory

import (
	"context"
	"sync"
	"time"

	"studymate-service/internal/app"
	"studymate-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionStore with TTL
// expiry. Expired sessions are dropped lazily on access.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]storedSession
}

type storedSession struct {
	session   *app.QuizSession
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]storedSession),
	}
}

// NewSessionStoreWithClock is test-only for deterministic expiry.
func NewSessionStoreWithClock(ttl time.Duration, now func() time.Time) *SessionStore {
	s := NewSessionStore(ttl)
	s.clock = now
	return s
}

// Save retains a snapshot of the session, so later mutations by the caller
// stay invisible until the next Save, matching the Redis store.
func (s *SessionStore) Save(_ context.Context, session *app.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = storedSession{
		session:   session.Clone(),
		expiresAt: s.clock().Add(s.ttl),
	}
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*app.QuizSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !entry.expiresAt.After(s.clock()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	// Concurrent readers must not share one mutable session.
	return entry.session.Clone(), nil
}
