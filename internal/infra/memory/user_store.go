package memory

import (
	"context"
	"sync"
	"time"

	"studymate-service/internal/domain"
)

// UserStore is the in-memory implementation of app.UserStore.
type UserStore struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{byName: make(map[string]domain.User)}
}

func (s *UserStore) Create(_ context.Context, username, passwordHash string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[username]; ok {
		return domain.User{}, domain.ErrUsernameTaken
	}

	s.nextID++
	user := domain.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.byName[username] = user
	return user, nil
}

func (s *UserStore) ByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byName[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}
