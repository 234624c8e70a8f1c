package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"studymate-service/internal/app"
	"studymate-service/internal/domain"
)

type QuizHandler struct {
	quiz  *app.QuizService
	study *app.StudyService
}

func NewQuizHandler(quiz *app.QuizService, study *app.StudyService) *QuizHandler {
	return &QuizHandler{quiz: quiz, study: study}
}

type generateRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"numQuestions"`
	Difficulty   string `json:"difficulty"`
}

// Generate is public; a valid bearer token attributes the session to its
// owner but is not required.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" || req.NumQuestions < 1 || req.Difficulty == "" {
		writeError(w, http.StatusBadRequest, "Topic, number of questions, and difficulty are required.")
		return
	}

	var ownerID int64
	if claims, ok := claimsFrom(r); ok {
		ownerID = claims.UserID
	}

	session, err := h.quiz.Generate(r.Context(), ownerID, req.Topic, req.NumQuestions, req.Difficulty)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate quiz from AI service.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": session.ID,
		"questions": session.Quiz.Questions,
	})
}

type submitRequest struct {
	Topic          *string `json:"topic"`
	Score          *int    `json:"score"`
	TotalQuestions *int    `json:"totalQuestions"`
}

// Submit records a client-graded attempt. The raw score is trusted as
// submitted; grading happened client-side.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == nil || req.Score == nil || req.TotalQuestions == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields for submission.")
		return
	}

	if _, err := h.study.RecordAttempt(r.Context(), claims.UserID, *req.Topic, *req.Score, *req.TotalQuestions); err != nil {
		if errors.Is(err, domain.ErrInvalidAttempt) {
			writeError(w, http.StatusBadRequest, "Missing required fields for submission.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not save quiz attempt.")
		return
	}

	writeMessage(w, http.StatusCreated, "Quiz attempt saved successfully!")
}

// History returns the caller's attempts, most-recent first.
func (h *QuizHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)

	attempts, err := h.study.History(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load quiz history.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attempts": attempts})
}

// Stats returns the caller's aggregated dashboard statistics.
func (h *QuizHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)

	summary, err := h.study.Stats(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not compute statistics.")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type answersRequest struct {
	Answers map[int]int `json:"answers"`
}

// Answers applies selections to a retained server-side session.
func (h *QuizHandler) Answers(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	sessionID := mux.Vars(r)["id"]

	var req answersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "Answers are required.")
		return
	}

	session, err := h.quiz.Answer(r.Context(), claims.UserID, sessionID, req.Answers)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Quiz session not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not record answers.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": session.ID,
		"state":     session.State,
		"answered":  len(session.Selections),
	})
}

// Grade closes a retained session server-side and records the attempt.
func (h *QuizHandler) Grade(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	sessionID := mux.Vars(r)["id"]

	result, err := h.quiz.Grade(r.Context(), claims.UserID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Quiz session not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Could not grade quiz session.")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
