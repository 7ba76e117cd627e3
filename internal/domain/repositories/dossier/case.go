package dossier

import (
	"context"

	"arguminds/internal/domain/models/dossier"
)

// CaseRepository defines data access operations for cases.
// Every method is scoped to the owning user.
type CaseRepository interface {
	// Create inserts a case and fills in its generated ID and timestamps
	Create(ctx context.Context, c *dossier.Case) error

	// GetByID retrieves a case owned by userID
	GetByID(ctx context.Context, id, userID string) (*dossier.Case, error)

	// List retrieves the user's cases matching filter, ordered by updated_at DESC
	List(ctx context.Context, userID string, filter dossier.CaseFilter) ([]dossier.Case, error)

	// Update persists title, description, type, status and updated_at
	Update(ctx context.Context, c *dossier.Case) error

	// Touch bumps updated_at, used when a child argument or source changes
	Touch(ctx context.Context, id string) error

	// Delete removes a case; arguments, sources and analyses cascade
	Delete(ctx context.Context, id, userID string) error
}
