package dossier

import (
	"context"

	"arguminds/internal/domain/models/dossier"
)

// OptionalString tracks tri-state semantics for nullable fields in PATCH requests (RFC 7396).
// Transport-agnostic: handlers map it from httputil.OptionalString.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// CreateCaseRequest represents a request to create a case
type CreateCaseRequest struct {
	UserID      string  `json:"-"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Status      string  `json:"status"` // Optional, defaults to EN_COURS
}

// UpdateCaseRequest represents a partial update of a case
type UpdateCaseRequest struct {
	Title       *string
	Description OptionalString
	Type        OptionalString
	Status      *string
}

// CaseService defines business logic operations for cases
type CaseService interface {
	// CreateCase creates a new case for the requesting user
	CreateCase(ctx context.Context, req *CreateCaseRequest) (*dossier.Case, error)

	// GetCase retrieves a case owned by userID
	GetCase(ctx context.Context, id, userID string) (*dossier.Case, error)

	// ListCases retrieves the user's cases, most recently updated first
	ListCases(ctx context.Context, userID string, filter dossier.CaseFilter) ([]dossier.Case, error)

	// UpdateCase applies a partial update
	UpdateCase(ctx context.Context, id, userID string, req *UpdateCaseRequest) (*dossier.Case, error)

	// DeleteCase deletes a case with all its arguments, sources and analyses
	DeleteCase(ctx context.Context, id, userID string) error
}
