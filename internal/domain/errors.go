package domain

import "errors"

var (
	// ErrInvalidAttempt is returned when an attempt fails validation
	// (score out of [0,100] or fewer than one question).
	ErrInvalidAttempt = errors.New("invalid quiz attempt")
	// ErrUsernameTaken is returned on registration with an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound indicates a user lookup missed.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound indicates an unknown or expired quiz session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrQuizGeneration indicates the AI service failed to produce a quiz.
	ErrQuizGeneration = errors.New("failed to generate quiz from AI service")
	// ErrTutorUnavailable indicates the AI service failed to produce a reply.
	ErrTutorUnavailable = errors.New("failed to generate chat reply from AI service")
)
