package dossier

import (
	"context"

	"github.com/google/uuid"

	"arguminds/internal/domain/models/dossier"
)

// ProfileRepository defines data access operations for user profiles
type ProfileRepository interface {
	// GetByUserID retrieves the profile of a user.
	// Returns nil, nil if the user has no profile yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*dossier.Profile, error)

	// Upsert creates or updates a profile
	Upsert(ctx context.Context, profile *dossier.Profile) error
}
