package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"studymate-service/internal/domain"
	"studymate-service/internal/llm"
)

// quizSystemPrompt instructs the model to emit nothing but the quiz JSON.
const quizSystemPrompt = `You are an expert quiz-maker AI. Your task is to generate a multiple-choice quiz. Please adhere to the following rules:
1. Generate a quiz based on the user's specified topic, number of questions, and difficulty.
2. Respond ONLY with a valid JSON object. Do not include any introductory text, closing remarks, or any text outside of the JSON structure.
3. The root of the JSON object must be a key named "questions", which is an array of question objects.
4. Each question object in the array must have the following exact keys: "questionText", "options", "correctAnswerIndex", "explanation".
5. "questionText" should be the quiz question as a string.
6. "options" must be an array of exactly 4 strings representing the possible answers.
7. "correctAnswerIndex" must be the 0-based index of the correct answer within the "options" array.
8. "explanation" must be a concise and clear explanation for why the correct answer is right.`

// quizSchema mirrors the prompt rules so malformed model output is rejected
// before it reaches a client.
var quizSchema = &llm.Schema{
	Name: "studymate-quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionText": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 4,
							"maxItems": 4,
						},
						"correctAnswerIndex": map[string]any{
							"type":    "integer",
							"minimum": 0,
							"maximum": 3,
						},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"questionText", "options", "correctAnswerIndex", "explanation"},
				},
				"minItems": 1,
			},
		},
		"required": []any{"questions"},
	},
}

// SessionStore abstracts where generated quiz sessions are retained
// (in-memory, Redis, etc). Entries expire after the configured TTL.
type SessionStore interface {
	Save(ctx context.Context, session *QuizSession) error
	Get(ctx context.Context, id string) (*QuizSession, error)
}

// QuizService generates quizzes through the chat provider and drives
// server-held quiz sessions.
type QuizService struct {
	provider llm.Provider
	sessions SessionStore
	study    *StudyService
	newID    func() string
}

func NewQuizService(provider llm.Provider, sessions SessionStore, study *StudyService) *QuizService {
	return &QuizService{
		provider: provider,
		sessions: sessions,
		study:    study,
		newID:    uuid.NewString,
	}
}

// Generate asks the model for a quiz and retains it as a new session.
// A single attempt is made; failures surface immediately and the user
// retries manually.
func (s *QuizService) Generate(ctx context.Context, ownerID int64, topic string, numQuestions int, difficulty string) (*QuizSession, error) {
	userPrompt := fmt.Sprintf("Generate a %d-question quiz about %q at a %s level.", numQuestions, topic, difficulty)

	resp, err := s.provider.Complete(ctx, llm.Request{
		System:      quizSystemPrompt,
		Turns:       []llm.Turn{{Role: llm.RoleUser, Content: userPrompt}},
		Schema:      quizSchema,
		Temperature: 0.6,
	})
	if err != nil {
		log.Printf("quiz generation failed for topic %q: %v", topic, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrQuizGeneration, err)
	}

	var payload struct {
		Questions []domain.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuizGeneration, err)
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("%w: model returned no questions", domain.ErrQuizGeneration)
	}

	quiz := domain.Quiz{Topic: topic, Questions: payload.Questions}
	session := NewQuizSession(s.newID(), ownerID, quiz, difficulty)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Answer applies a batch of selections to a retained session. Selections on
// a graded session are no-ops.
func (s *QuizService) Answer(ctx context.Context, ownerID int64, sessionID string, answers map[int]int) (*QuizSession, error) {
	session, err := s.ownedSession(ctx, ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	for question, option := range answers {
		session.Select(question, option)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GradeResult is the outcome of grading a retained session.
type GradeResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
	Percentage     int `json:"percentage"`
}

// Grade closes a retained session, records the attempt for its owner, and
// returns the result. Re-grading returns the recorded result without
// recording a second attempt.
func (s *QuizService) Grade(ctx context.Context, ownerID int64, sessionID string) (GradeResult, error) {
	session, err := s.ownedSession(ctx, ownerID, sessionID)
	if err != nil {
		return GradeResult{}, err
	}

	alreadyGraded := session.State == StateGraded
	score, total := session.Grade()
	if err := s.sessions.Save(ctx, session); err != nil {
		return GradeResult{}, err
	}

	if !alreadyGraded && ownerID != 0 {
		if _, err := s.study.RecordAttempt(ctx, ownerID, session.Quiz.Topic, score, total); err != nil {
			return GradeResult{}, err
		}
	}

	pct := int(math.Round(float64(score) / float64(total) * 100))
	return GradeResult{Score: score, TotalQuestions: total, Percentage: pct}, nil
}

func (s *QuizService) ownedSession(ctx context.Context, ownerID int64, sessionID string) (*QuizSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Anonymous sessions (owner 0) may be claimed by whoever holds the id.
	if session.OwnerID != 0 && session.OwnerID != ownerID {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}
