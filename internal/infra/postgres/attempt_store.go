package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"studymate-service/internal/domain"
)

// AttemptStore persists quiz attempts in Postgres. Serial ids give the
// per-owner ordering the store contract requires.
type AttemptStore struct {
	pool *pgxpool.Pool
}

func NewAttemptStore(pool *pgxpool.Pool) *AttemptStore {
	return &AttemptStore{pool: pool}
}

func (s *AttemptStore) Record(ctx context.Context, attempt domain.Attempt) (int64, error) {
	if err := attempt.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO attempts (owner_id, topic, score, total_questions, completed_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		attempt.OwnerID, attempt.Topic, attempt.Score, attempt.TotalQuestions, attempt.CompletedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("record attempt: %w", err)
	}
	return id, nil
}

// ListByOwner returns the owner's attempts, most-recent first.
func (s *AttemptStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Attempt, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, topic, score, total_questions, completed_at
		 FROM attempts WHERE owner_id = $1 ORDER BY id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.Attempt, 0)
	for rows.Next() {
		var a domain.Attempt
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Topic, &a.Score, &a.TotalQuestions, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
