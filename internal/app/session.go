package app

import (
	"time"

	"studymate-service/internal/domain"
)

// SessionState tracks a quiz session's lifecycle. Sessions are created in
// StateGenerated; StateUnstarted exists only before generation succeeds and
// is never stored.
type SessionState string

const (
	StateGenerated SessionState = "generated"
	StateAnswering SessionState = "answering"
	StateGraded    SessionState = "graded"
)

// QuizSession is one generated quiz plus the user's selections and grading
// outcome. Fields are exported so session stores can serialize it.
type QuizSession struct {
	ID         string       `json:"id"`
	OwnerID    int64        `json:"ownerId"`
	Quiz       domain.Quiz  `json:"quiz"`
	Difficulty string       `json:"difficulty"`
	Selections map[int]int  `json:"selections"`
	State      SessionState `json:"state"`
	RawScore   int          `json:"rawScore"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// NewQuizSession creates a session in StateGenerated with no selections.
func NewQuizSession(id string, ownerID int64, quiz domain.Quiz, difficulty string) *QuizSession {
	return &QuizSession{
		ID:         id,
		OwnerID:    ownerID,
		Quiz:       quiz,
		Difficulty: difficulty,
		Selections: make(map[int]int),
		State:      StateGenerated,
		CreatedAt:  time.Now(),
	}
}

// Clone returns a deep copy. Session stores hand out clones so callers
// mutate a private copy and changes only land via Save, the same visibility
// the Redis store gets from serializing.
func (s *QuizSession) Clone() *QuizSession {
	out := *s
	out.Selections = make(map[int]int, len(s.Selections))
	for question, option := range s.Selections {
		out.Selections[question] = option
	}
	out.Quiz.Questions = append([]domain.Question(nil), s.Quiz.Questions...)
	return &out
}

// Select records an option choice for a question. Last write per question
// wins; selections may change freely before grading. Once graded, Select is
// a no-op; a fresh session is required to retake. Out-of-range indices are
// ignored.
func (s *QuizSession) Select(question, option int) {
	if s.State == StateGraded {
		return
	}
	if question < 0 || question >= len(s.Quiz.Questions) {
		return
	}
	if option < 0 || option >= len(s.Quiz.Questions[question].Options) {
		return
	}
	if s.Selections == nil {
		s.Selections = make(map[int]int)
	}
	s.Selections[question] = option
	s.State = StateAnswering
}

// Grade closes the session and returns the raw score: the count of
// questions whose recorded selection equals the correct index. Unanswered
// questions never count. Grading is one-way; repeat calls return the
// recorded result without re-grading.
func (s *QuizSession) Grade() (score, total int) {
	total = len(s.Quiz.Questions)
	if s.State == StateGraded {
		return s.RawScore, total
	}

	for i, q := range s.Quiz.Questions {
		selected, answered := s.Selections[i]
		if answered && selected == q.CorrectAnswerIndex {
			score++
		}
	}
	s.RawScore = score
	s.State = StateGraded
	return score, total
}
