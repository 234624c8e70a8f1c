package http

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter wires all handlers onto the API surface. CORS is permissive,
// matching the frontend-on-another-port development setup.
func NewRouter(authH *AuthHandler, quizH *QuizHandler, tutorH *TutorHandler, wsH *WSHandler, verifier TokenVerifier) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	authR := r.PathPrefix("/api/auth").Subrouter()
	authR.HandleFunc("/register", authH.Register).Methods(http.MethodPost)
	authR.HandleFunc("/login", authH.Login).Methods(http.MethodPost)

	quizR := r.PathPrefix("/api/quiz").Subrouter()
	quizR.Handle("/generate", optionalAuth(verifier, http.HandlerFunc(quizH.Generate))).Methods(http.MethodPost)
	quizR.Handle("/submit", protect(verifier, http.HandlerFunc(quizH.Submit))).Methods(http.MethodPost)
	quizR.Handle("/history", protect(verifier, http.HandlerFunc(quizH.History))).Methods(http.MethodGet)
	quizR.Handle("/stats", protect(verifier, http.HandlerFunc(quizH.Stats))).Methods(http.MethodGet)
	quizR.Handle("/session/{id}/answers", protect(verifier, http.HandlerFunc(quizH.Answers))).Methods(http.MethodPost)
	quizR.Handle("/session/{id}/grade", protect(verifier, http.HandlerFunc(quizH.Grade))).Methods(http.MethodPost)

	tutorR := r.PathPrefix("/api/tutor").Subrouter()
	tutorR.Handle("/chat", protect(verifier, http.HandlerFunc(tutorH.Chat))).Methods(http.MethodPost)

	r.HandleFunc("/ws/tutor", wsH.ServeWS)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)
}
