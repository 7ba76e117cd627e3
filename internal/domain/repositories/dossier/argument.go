package dossier

import (
	"context"

	"arguminds/internal/domain/models/dossier"
)

// ArgumentRepository defines data access operations for arguments
type ArgumentRepository interface {
	// Create inserts an argument and fills in its generated ID and timestamps
	Create(ctx context.Context, arg *dossier.Argument) error

	// GetByID retrieves an argument of a case, with its linked sources
	GetByID(ctx context.Context, id, caseID string) (*dossier.Argument, error)

	// ListByCase retrieves all arguments of a case ordered by created_at ASC,
	// each with its linked sources
	ListByCase(ctx context.Context, caseID string) ([]dossier.Argument, error)

	// Update persists title, content, type, parent and updated_at
	Update(ctx context.Context, arg *dossier.Argument) error

	// UpdatePosition stores the graph canvas position
	UpdatePosition(ctx context.Context, id, caseID string, pos dossier.Position) error

	// SetParent points an argument at a new parent (nil detaches it)
	SetParent(ctx context.Context, id, caseID string, parentID *string) error

	// Delete removes an argument; children keep existing with a NULL parent
	Delete(ctx context.Context, id, caseID string) error
}
