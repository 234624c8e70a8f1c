package memory

import (
	"context"
	"sync"

	"studymate-service/internal/domain"
)

// AttemptStore is the in-memory implementation of app.AttemptStore. A single
// lock serializes writes, which preserves per-owner submission order; data
// lives for the process lifetime only.
type AttemptStore struct {
	mu      sync.RWMutex
	nextID  int64
	byOwner map[int64][]domain.Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{byOwner: make(map[int64][]domain.Attempt)}
}

func (s *AttemptStore) Record(_ context.Context, attempt domain.Attempt) (int64, error) {
	if err := attempt.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	attempt.ID = s.nextID
	s.byOwner[attempt.OwnerID] = append(s.byOwner[attempt.OwnerID], attempt)
	return attempt.ID, nil
}

// ListByOwner returns the owner's attempts, most-recent first.
func (s *AttemptStore) ListByOwner(_ context.Context, ownerID int64) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.byOwner[ownerID]
	out := make([]domain.Attempt, len(stored))
	for i, a := range stored {
		out[len(stored)-1-i] = a
	}
	return out, nil
}
