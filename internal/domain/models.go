package domain

import "time"

// User is a registered account. PasswordHash holds the bcrypt hash, never
// the plaintext.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Attempt is one completed quiz. Score is a rounded integer percentage,
// never a raw fraction. Attempts are immutable once recorded.
type Attempt struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"-"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

// Validate enforces the attempt invariants before a store accepts it.
func (a Attempt) Validate() error {
	if a.TotalQuestions < 1 {
		return ErrInvalidAttempt
	}
	if a.Score < 0 || a.Score > 100 {
		return ErrInvalidAttempt
	}
	return nil
}

// Question is a single multiple-choice item. CorrectAnswerIndex always
// indexes into Options.
type Question struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// Quiz is an ordered set of questions generated for a topic. Produced once
// per generation request and never mutated afterwards.
type Quiz struct {
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

// TopicStat is the derived per-topic view used by the dashboard. Recomputed
// on demand, never persisted.
type TopicStat struct {
	Topic        string `json:"topic"`
	AverageScore int    `json:"averageScore"`
	AttemptCount int    `json:"attemptCount"`
}

// Summary is the full aggregation over a user's attempt history.
type Summary struct {
	TotalQuizzes       int         `json:"totalQuizzes"`
	OverallAverage     int         `json:"overallAverage"`
	PerformanceByTopic []TopicStat `json:"performanceByTopic"`
	WeakTopics         []string    `json:"weakTopics"`
}

// Role identifies the author of a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message in a tutor conversation. The first turn of every
// tutor request is a synthesized system turn and is never shown to the user
// as a chat bubble.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
