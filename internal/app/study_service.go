package app

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"studymate-service/internal/domain"
)

// AttemptStore abstracts how quiz attempts are stored. Append-only: no
// update or delete is exposed. Implementations must preserve per-owner
// submission order.
type AttemptStore interface {
	Record(ctx context.Context, attempt domain.Attempt) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Attempt, error)
}

// StudyService records attempts and serves history and derived statistics.
// Summaries are cached per owner and invalidated on record; concurrent
// recomputations for the same owner collapse into one.
type StudyService struct {
	attempts AttemptStore
	clock    func() time.Time

	sf        singleflight.Group
	mu        sync.RWMutex
	summaries map[int64]domain.Summary
	// gens guards against caching a summary computed from a listing that a
	// concurrent record has already outdated.
	gens map[int64]uint64
}

func NewStudyService(attempts AttemptStore) *StudyService {
	return &StudyService{
		attempts:  attempts,
		clock:     time.Now,
		summaries: make(map[int64]domain.Summary),
		gens:      make(map[int64]uint64),
	}
}

// NewStudyServiceWithClock is test-only for deterministic timestamps.
func NewStudyServiceWithClock(attempts AttemptStore, now func() time.Time) *StudyService {
	s := NewStudyService(attempts)
	s.clock = now
	return s
}

// RecordAttempt converts a raw score into a percentage and stores the
// attempt. The raw score comes from grading; percentage conversion happens
// here so stored scores are always rounded integer percentages.
func (s *StudyService) RecordAttempt(ctx context.Context, ownerID int64, topic string, rawScore, totalQuestions int) (domain.Attempt, error) {
	if totalQuestions < 1 || rawScore < 0 || rawScore > totalQuestions {
		return domain.Attempt{}, domain.ErrInvalidAttempt
	}

	attempt := domain.Attempt{
		OwnerID:        ownerID,
		Topic:          topic,
		Score:          int(math.Round(float64(rawScore) / float64(totalQuestions) * 100)),
		TotalQuestions: totalQuestions,
		CompletedAt:    s.clock(),
	}

	id, err := s.attempts.Record(ctx, attempt)
	if err != nil {
		return domain.Attempt{}, err
	}
	attempt.ID = id

	s.mu.Lock()
	delete(s.summaries, ownerID)
	s.gens[ownerID]++
	s.mu.Unlock()

	return attempt, nil
}

// History returns the owner's attempts, most-recent first.
func (s *StudyService) History(ctx context.Context, ownerID int64) ([]domain.Attempt, error) {
	return s.attempts.ListByOwner(ctx, ownerID)
}

// Stats aggregates the owner's history into dashboard statistics.
func (s *StudyService) Stats(ctx context.Context, ownerID int64) (domain.Summary, error) {
	s.mu.RLock()
	if summary, ok := s.summaries[ownerID]; ok {
		s.mu.RUnlock()
		return summary, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.sf.Do(strconv.FormatInt(ownerID, 10), func() (interface{}, error) {
		s.mu.RLock()
		if summary, ok := s.summaries[ownerID]; ok {
			s.mu.RUnlock()
			return summary, nil
		}
		gen := s.gens[ownerID]
		s.mu.RUnlock()

		attempts, err := s.attempts.ListByOwner(ctx, ownerID)
		if err != nil {
			return domain.Summary{}, err
		}
		// ListByOwner is most-recent first; the aggregator wants
		// chronological order for first-appearance topic ordering.
		chronological := make([]domain.Attempt, len(attempts))
		for i, a := range attempts {
			chronological[len(attempts)-1-i] = a
		}
		summary := Summarize(chronological)

		// A record that landed after the listing bumped the generation;
		// caching this summary would hide that attempt until the next
		// record. Serve it once, uncached.
		s.mu.Lock()
		if s.gens[ownerID] == gen {
			s.summaries[ownerID] = summary
		}
		s.mu.Unlock()
		return summary, nil
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return result.(domain.Summary), nil
}

// WeakTopics returns the owner's weak-topic list for tutor priming.
func (s *StudyService) WeakTopics(ctx context.Context, ownerID int64) ([]string, error) {
	summary, err := s.Stats(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return summary.WeakTopics, nil
}
