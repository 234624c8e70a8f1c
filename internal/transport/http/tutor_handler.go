package http

import (
	"encoding/json"
	"net/http"

	"studymate-service/internal/app"
	"studymate-service/internal/domain"
)

type TutorHandler struct {
	tutor *app.TutorService
}

func NewTutorHandler(tutor *app.TutorService) *TutorHandler {
	return &TutorHandler{tutor: tutor}
}

type chatRequest struct {
	Messages   []domain.ChatTurn `json:"messages"`
	WeakTopics []string          `json:"weakTopics"`
}

// Chat forwards the transcript to the tutor. When the client omits
// weakTopics they are derived from the caller's attempt history.
func (h *TutorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Messages == nil {
		writeError(w, http.StatusBadRequest, "Valid chat messages are required.")
		return
	}

	reply, err := h.tutor.Chat(r.Context(), claims.UserID, req.Messages, req.WeakTopics)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate chat reply from AI service.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
