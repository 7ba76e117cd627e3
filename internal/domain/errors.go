package domain

import "errors"

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrUnavailable means a dependency (e.g. the AI provider) is not configured or not reachable
	ErrUnavailable = errors.New("service unavailable")

	// ErrInvalidAIResponse means the model answered without a usable JSON object
	ErrInvalidAIResponse = errors.New("invalid AI response")
)
