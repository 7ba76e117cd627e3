package dossier

import (
	"context"

	"arguminds/internal/domain/models/dossier"
)

// SourceRepository defines data access operations for sources and their
// links to arguments
type SourceRepository interface {
	// Create inserts a source and fills in its generated ID and timestamps
	Create(ctx context.Context, src *dossier.Source) error

	// GetByID retrieves a source of a case
	GetByID(ctx context.Context, id, caseID string) (*dossier.Source, error)

	// ListByCase retrieves the sources of a case ordered by created_at DESC,
	// with their linked argument count
	ListByCase(ctx context.Context, caseID string) ([]dossier.Source, error)

	// ListByArgument retrieves the sources linked to an argument ordered by created_at DESC
	ListByArgument(ctx context.Context, argumentID, caseID string) ([]dossier.Source, error)

	// Update persists title, url, content and updated_at
	Update(ctx context.Context, src *dossier.Source) error

	// Delete removes a source and its links
	Delete(ctx context.Context, id, caseID string) error

	// Link attaches a source to an argument; linking twice is a no-op
	Link(ctx context.Context, sourceID, argumentID string) error

	// Unlink detaches a source from an argument; unlinking a missing link is a no-op
	Unlink(ctx context.Context, sourceID, argumentID string) error
}
