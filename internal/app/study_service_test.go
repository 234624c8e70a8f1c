package app

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"studymate-service/internal/domain"
)

// fakeAttemptStore mimics the store contract: per-owner append order in,
// most-recent first out.
type fakeAttemptStore struct {
	nextID   int64
	byOwner  map[int64][]domain.Attempt
	listErr  error
	listHits int
	// onList runs after the listing snapshot is taken, to interleave
	// writes with an in-flight read.
	onList func()
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{byOwner: make(map[int64][]domain.Attempt)}
}

func (f *fakeAttemptStore) Record(_ context.Context, attempt domain.Attempt) (int64, error) {
	if err := attempt.Validate(); err != nil {
		return 0, err
	}
	f.nextID++
	attempt.ID = f.nextID
	f.byOwner[attempt.OwnerID] = append(f.byOwner[attempt.OwnerID], attempt)
	return attempt.ID, nil
}

func (f *fakeAttemptStore) ListByOwner(_ context.Context, ownerID int64) ([]domain.Attempt, error) {
	f.listHits++
	if f.listErr != nil {
		return nil, f.listErr
	}
	stored := f.byOwner[ownerID]
	out := make([]domain.Attempt, len(stored))
	for i, a := range stored {
		out[len(stored)-1-i] = a
	}
	if f.onList != nil {
		f.onList()
	}
	return out, nil
}

func TestRecordAttemptConvertsRawScore(t *testing.T) {
	store := newFakeAttemptStore()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	service := NewStudyServiceWithClock(store, func() time.Time { return now })

	attempt, err := service.RecordAttempt(context.Background(), 1, "Math", 3, 5)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if attempt.Score != 60 {
		t.Fatalf("expected 3/5 to store as 60, got %d", attempt.Score)
	}
	if attempt.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if !attempt.CompletedAt.Equal(now) {
		t.Fatalf("expected clock timestamp, got %v", attempt.CompletedAt)
	}

	// 2/3 is 66.67, rounds to 67.
	attempt, err = service.RecordAttempt(context.Background(), 1, "Math", 2, 3)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if attempt.Score != 67 {
		t.Fatalf("expected 2/3 to store as 67, got %d", attempt.Score)
	}
}

func TestRecordAttemptRejectsInvalid(t *testing.T) {
	service := NewStudyService(newFakeAttemptStore())

	cases := []struct {
		name  string
		raw   int
		total int
	}{
		{"zero questions", 0, 0},
		{"negative score", -1, 5},
		{"score above total", 6, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.RecordAttempt(context.Background(), 1, "Math", tc.raw, tc.total)
			if !errors.Is(err, domain.ErrInvalidAttempt) {
				t.Fatalf("expected ErrInvalidAttempt, got %v", err)
			}
		})
	}
}

func TestHistoryIsMostRecentFirst(t *testing.T) {
	store := newFakeAttemptStore()
	service := NewStudyService(store)
	ctx := context.Background()

	for _, topic := range []string{"Math", "History", "Science"} {
		if _, err := service.RecordAttempt(ctx, 1, topic, 4, 5); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	history, err := service.History(ctx, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var topics []string
	for _, a := range history {
		topics = append(topics, a.Topic)
	}
	if !reflect.DeepEqual(topics, []string{"Science", "History", "Math"}) {
		t.Fatalf("expected most-recent first, got %v", topics)
	}
}

func TestStatsUsesChronologicalTopicOrder(t *testing.T) {
	store := newFakeAttemptStore()
	service := NewStudyService(store)
	ctx := context.Background()

	// Math was attempted first, so it leads the dashboard even though the
	// store hands history back most-recent first.
	if _, err := service.RecordAttempt(ctx, 1, "Math", 2, 5); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := service.RecordAttempt(ctx, 1, "History", 5, 5); err != nil {
		t.Fatalf("record: %v", err)
	}

	summary, err := service.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if summary.PerformanceByTopic[0].Topic != "Math" {
		t.Fatalf("expected Math first, got %v", summary.PerformanceByTopic)
	}
	if !reflect.DeepEqual(summary.WeakTopics, []string{"Math"}) {
		t.Fatalf("expected weak [Math], got %v", summary.WeakTopics)
	}
}

func TestStatsCachesUntilNextRecord(t *testing.T) {
	store := newFakeAttemptStore()
	service := NewStudyService(store)
	ctx := context.Background()

	if _, err := service.RecordAttempt(ctx, 1, "Math", 3, 5); err != nil {
		t.Fatalf("record: %v", err)
	}

	if _, err := service.Stats(ctx, 1); err != nil {
		t.Fatalf("stats: %v", err)
	}
	hits := store.listHits
	if _, err := service.Stats(ctx, 1); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if store.listHits != hits {
		t.Fatalf("expected cached summary, store was hit again")
	}

	// Recording invalidates; the next read recomputes.
	if _, err := service.RecordAttempt(ctx, 1, "History", 5, 5); err != nil {
		t.Fatalf("record: %v", err)
	}
	summary, err := service.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if store.listHits == hits {
		t.Fatalf("expected recompute after record")
	}
	if summary.TotalQuizzes != 2 {
		t.Fatalf("expected 2 quizzes after invalidation, got %d", summary.TotalQuizzes)
	}
}

func TestStatsDoesNotCacheSummaryOutdatedByConcurrentRecord(t *testing.T) {
	store := newFakeAttemptStore()
	service := NewStudyService(store)
	ctx := context.Background()

	if _, err := service.RecordAttempt(ctx, 1, "Math", 3, 5); err != nil {
		t.Fatalf("record: %v", err)
	}

	// A record landing after the listing snapshot but before the summary is
	// cached must not be hidden by the cache afterwards.
	store.onList = func() {
		store.onList = nil
		if _, err := service.RecordAttempt(ctx, 1, "History", 5, 5); err != nil {
			t.Fatalf("record during list: %v", err)
		}
	}

	summary, err := service.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	// The in-flight computation saw only the pre-record snapshot.
	if summary.TotalQuizzes != 1 {
		t.Fatalf("expected snapshot summary of 1 quiz, got %d", summary.TotalQuizzes)
	}

	// The next read must recompute and see both attempts.
	summary, err = service.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if summary.TotalQuizzes != 2 {
		t.Fatalf("stale summary was cached; expected 2 quizzes, got %d", summary.TotalQuizzes)
	}
}

func TestStatsPropagatesStoreError(t *testing.T) {
	store := newFakeAttemptStore()
	store.listErr = errors.New("boom")
	service := NewStudyService(store)

	if _, err := service.Stats(context.Background(), 1); err == nil {
		t.Fatalf("expected store error to surface")
	}
}

func TestWeakTopicsForTutorPriming(t *testing.T) {
	store := newFakeAttemptStore()
	service := NewStudyService(store)
	ctx := context.Background()

	if _, err := service.RecordAttempt(ctx, 1, "Algebra", 1, 5); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := service.RecordAttempt(ctx, 1, "Biology", 5, 5); err != nil {
		t.Fatalf("record: %v", err)
	}

	weak, err := service.WeakTopics(ctx, 1)
	if err != nil {
		t.Fatalf("weak topics: %v", err)
	}
	if !reflect.DeepEqual(weak, []string{"Algebra"}) {
		t.Fatalf("expected [Algebra], got %v", weak)
	}
}
