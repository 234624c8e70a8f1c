package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"studymate-service/internal/app"
	"studymate-service/internal/domain"
)

type AuthHandler struct {
	service *app.AuthService
}

func NewAuthHandler(service *app.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	if _, err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			writeMessage(w, http.StatusBadRequest, "Username already taken.")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Could not register user.")
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully!")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials.")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeMessage(w, http.StatusBadRequest, "Invalid credentials.")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "Could not log in.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}
