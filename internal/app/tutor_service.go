package app

import (
	"context"
	"fmt"
	"strings"

	"studymate-service/internal/domain"
	"studymate-service/internal/llm"
)

// tutorPromptTemplate is the fixed behavioral policy for the tutor persona.
// The %s slot carries the weak-topics list or the "None yet" marker.
const tutorPromptTemplate = `You are "Mate", an expert AI tutor with a friendly and encouraging personality.
Your primary goal is to help the student understand concepts they find difficult.

You have been provided with a list of topics the student has struggled with in past quizzes: %s.

Follow these rules strictly:
1. Use this list of weak topics to proactively guide the conversation. If the conversation is new, start by asking if they'd like to review one of these topics.
2. If the user asks a question, answer it clearly and simply. Use analogies and real-world examples.
3. After explaining a concept, ask a follow-up question to check for understanding.
4. Keep your tone supportive and positive. Never say "you are wrong." Instead, say "That's a good try, but let's look at it from another angle."
5. The messages you receive contain the entire conversation history. Use it to maintain context and avoid repeating yourself.`

// WeakTopicSource supplies the weak-topic list for a user when the caller
// does not provide one.
type WeakTopicSource interface {
	WeakTopics(ctx context.Context, ownerID int64) ([]string, error)
}

// TutorService runs the tutor conversation. The chat provider is stateless
// between calls; continuity comes from resending the whole transcript plus
// one synthesized system turn on every request.
type TutorService struct {
	provider llm.Provider
	weak     WeakTopicSource
}

func NewTutorService(provider llm.Provider, weak WeakTopicSource) *TutorService {
	return &TutorService{provider: provider, weak: weak}
}

// SessionTopics resolves the weak-topic list once at session start; long
// lived transports (the websocket) prime with it and reuse it for every
// turn of the session.
func (s *TutorService) SessionTopics(ctx context.Context, ownerID int64) ([]string, error) {
	return s.weak.WeakTopics(ctx, ownerID)
}

// SystemPrompt builds the synthesized system turn for a session.
func (s *TutorService) SystemPrompt(weakTopics []string) string {
	list := "None yet"
	if len(weakTopics) > 0 {
		list = strings.Join(weakTopics, ", ")
	}
	return fmt.Sprintf(tutorPromptTemplate, list)
}

// Chat sends the transcript to the provider and returns the reply. When
// weakTopics is nil they are derived from the owner's attempt history. On
// provider failure the caller's transcript is untouched, so a retry resends
// the same history.
func (s *TutorService) Chat(ctx context.Context, ownerID int64, transcript []domain.ChatTurn, weakTopics []string) (string, error) {
	if weakTopics == nil {
		derived, err := s.weak.WeakTopics(ctx, ownerID)
		if err != nil {
			return "", err
		}
		weakTopics = derived
	}

	turns := make([]llm.Turn, 0, len(transcript))
	for _, t := range transcript {
		switch t.Role {
		case domain.RoleUser:
			turns = append(turns, llm.Turn{Role: llm.RoleUser, Content: t.Content})
		case domain.RoleAssistant:
			turns = append(turns, llm.Turn{Role: llm.RoleAssistant, Content: t.Content})
		default:
			// Client-supplied system turns are dropped; the service
			// synthesizes its own.
		}
	}

	resp, err := s.provider.Complete(ctx, llm.Request{
		System:      s.SystemPrompt(weakTopics),
		Turns:       turns,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTutorUnavailable, err)
	}
	return resp.Content, nil
}
