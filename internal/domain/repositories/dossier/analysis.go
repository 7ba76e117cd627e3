package dossier

import (
	"context"

	"arguminds/internal/domain/models/dossier"
)

// AnalysisRepository stores AI analyses of arguments
type AnalysisRepository interface {
	// Create inserts an analysis and fills in its generated ID and created_at
	Create(ctx context.Context, analysis *dossier.Analysis) error

	// ListByArgument returns the most recent analyses first, at most limit
	ListByArgument(ctx context.Context, argumentID string, limit int) ([]dossier.Analysis, error)

	// Delete removes one analysis of an argument
	Delete(ctx context.Context, id, argumentID string) error

	// DeleteByArgument removes every analysis of an argument and returns how many were removed
	DeleteByArgument(ctx context.Context, argumentID string) (int64, error)
}
