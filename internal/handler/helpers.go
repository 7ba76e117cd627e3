package handler

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"arguminds/internal/domain"
	"arguminds/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			httputil.RespondValidationError(w, err.Error(), fieldMessages(fieldErrs))
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidAIResponse):
		httputil.RespondError(w, http.StatusBadGateway, "the AI model returned an unusable answer")
	case errors.Is(err, domain.ErrUnavailable):
		httputil.RespondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// fieldMessages flattens ozzo field errors into JSON-name keyed messages
func fieldMessages(errs validation.Errors) map[string]string {
	fields := make(map[string]string, len(errs))
	for name, err := range errs {
		if err != nil {
			fields[name] = err.Error()
		}
	}
	return fields
}

// parseUUID parses a UUID string
func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid UUID: %w", err)
	}
	return id, nil
}

// requireUserID returns the authenticated user ID or writes a 401
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

// pathUUID reads a path parameter that must be a UUID, or writes a 400.
// Malformed IDs never reach Postgres, where they would fail the uuid cast.
func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" ID is required")
		return "", false
	}
	if err := uuid.Validate(value); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid "+label+" ID format")
		return "", false
	}
	return value, true
}
