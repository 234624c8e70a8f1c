package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"studymate-service/internal/app"
	"studymate-service/internal/domain"
)

// WSHandler runs a tutor conversation over a websocket. The transcript is
// held per connection; each user turn resends the full history to the chat
// provider, so a dropped connection simply starts a fresh session.
type WSHandler struct {
	tutor    *app.TutorService
	verifier TokenVerifier
	upgrader websocket.Upgrader
}

func NewWSHandler(tutor *app.TutorService, verifier TokenVerifier) *WSHandler {
	return &WSHandler{
		tutor:    tutor,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type messagePayload struct {
	Content string `json:"content"`
}

type outboundFrame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS authenticates via a token query parameter (browsers cannot set
// headers on websocket dials), primes the session with the caller's weak
// topics, then relays turns.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Not authorized, no token", http.StatusUnauthorized)
		return
	}
	claims, err := h.verifier.Verify(token)
	if err != nil {
		http.Error(w, "Not authorized, token failed", http.StatusUnauthorized)
		return
	}

	weakTopics, err := h.tutor.SessionTopics(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Could not prepare tutor session", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Replies are written only from this loop, so no writer goroutine is
	// needed; there are no server-initiated pushes in a tutor session.
	var transcript []domain.ChatTurn
	for {
		var inbound inboundFrame
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		if inbound.Type != "message" {
			_ = conn.WriteJSON(outboundFrame{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
			continue
		}

		var payload messagePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Content == "" {
			_ = conn.WriteJSON(outboundFrame{Type: "error", Payload: errorPayload{Message: "invalid message payload"}})
			continue
		}

		// The user turn stays in the transcript even when the provider
		// fails, so a retry resends the same history.
		transcript = append(transcript, domain.ChatTurn{Role: domain.RoleUser, Content: payload.Content})

		reply, err := h.tutor.Chat(r.Context(), claims.UserID, transcript, weakTopics)
		if err != nil {
			_ = conn.WriteJSON(outboundFrame{Type: "error", Payload: errorPayload{Message: "Failed to generate chat reply from AI service."}})
			continue
		}

		transcript = append(transcript, domain.ChatTurn{Role: domain.RoleAssistant, Content: reply})
		_ = conn.WriteJSON(outboundFrame{Type: "reply", Payload: messagePayload{Content: reply}})
	}
}
