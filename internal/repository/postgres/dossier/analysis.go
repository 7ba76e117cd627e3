package dossier

import (
	"context"
	"fmt"

	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	dossierRepo "arguminds/internal/domain/repositories/dossier"

	"arguminds/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAnalysisRepository implements the AnalysisRepository interface
type PostgresAnalysisRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(config *postgres.RepositoryConfig) dossierRepo.AnalysisRepository {
	return &PostgresAnalysisRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create stores an analysis; result is written as JSONB
func (r *PostgresAnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (argument_id, action, result, model, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Analyses)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		analysis.ArgumentID,
		analysis.Action,
		map[string]interface{}(analysis.Result),
		analysis.Model,
		analysis.CreatedAt,
	).Scan(&analysis.ID, &analysis.CreatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("argument %s: %w", analysis.ArgumentID, domain.ErrNotFound)
		}
		return fmt.Errorf("create analysis: %w", err)
	}

	return nil
}

// ListByArgument returns the most recent analyses first, at most limit
func (r *PostgresAnalysisRepository) ListByArgument(ctx context.Context, argumentID string, limit int) ([]models.Analysis, error) {
	query := fmt.Sprintf(`
		SELECT id, argument_id, action, result, model, created_at
		FROM %s
		WHERE argument_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.Analyses)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, argumentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []models.Analysis{}
	for rows.Next() {
		var analysis models.Analysis
		var result map[string]interface{}
		err := rows.Scan(
			&analysis.ID,
			&analysis.ArgumentID,
			&analysis.Action,
			&result,
			&analysis.Model,
			&analysis.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		analysis.Result = result
		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}

	return analyses, nil
}

// Delete removes one analysis of an argument
func (r *PostgresAnalysisRepository) Delete(ctx context.Context, id, argumentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND argument_id = $2`, r.tables.Analyses)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, argumentID)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("analysis %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByArgument removes every analysis of an argument
func (r *PostgresAnalysisRepository) DeleteByArgument(ctx context.Context, argumentID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE argument_id = $1`, r.tables.Analyses)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, argumentID)
	if err != nil {
		return 0, fmt.Errorf("delete analyses: %w", err)
	}

	return result.RowsAffected(), nil
}
