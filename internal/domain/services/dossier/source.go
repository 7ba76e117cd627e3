package dossier

import (
	"context"

	"arguminds/internal/domain/models/dossier"
)

// SourceRequest carries the editable fields of a source (create and update)
type SourceRequest struct {
	Title   string  `json:"title"`
	URL     *string `json:"url"`
	Content *string `json:"content"`
}

// SourceService defines business logic operations for sources.
// Every method checks that userID owns the case.
type SourceService interface {
	CreateSource(ctx context.Context, userID, caseID string, req *SourceRequest) (*dossier.Source, error)

	// ListSources returns the case's sources newest first
	ListSources(ctx context.Context, userID, caseID string) ([]dossier.Source, error)

	// ListArgumentSources returns the sources linked to one argument
	ListArgumentSources(ctx context.Context, userID, caseID, argumentID string) ([]dossier.Source, error)

	UpdateSource(ctx context.Context, userID, caseID, id string, req *SourceRequest) (*dossier.Source, error)

	DeleteSource(ctx context.Context, userID, caseID, id string) error

	// LinkSource attaches a source to an argument of the same case
	LinkSource(ctx context.Context, userID, caseID, sourceID, argumentID string) error

	// UnlinkSource detaches a source from an argument
	UnlinkSource(ctx context.Context, userID, caseID, sourceID, argumentID string) error
}
