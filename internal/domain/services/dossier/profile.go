package dossier

import (
	"context"

	"github.com/google/uuid"

	"arguminds/internal/domain/models/dossier"
)

// UpdateProfileRequest represents a partial update of a profile
type UpdateProfileRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

// ProfileService manages user profiles
type ProfileService interface {
	// GetProfile returns the user's profile, or defaults when none is stored
	GetProfile(ctx context.Context, userID uuid.UUID) (*dossier.Profile, error)

	UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*dossier.Profile, error)

	// CaseTypes returns the case types offered to the user's role
	CaseTypes(ctx context.Context, userID uuid.UUID) ([]string, error)
}
