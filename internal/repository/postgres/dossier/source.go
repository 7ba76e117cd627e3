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

// PostgresSourceRepository implements the SourceRepository interface
type PostgresSourceRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(config *postgres.RepositoryConfig) dossierRepo.SourceRepository {
	return &PostgresSourceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new source
func (r *PostgresSourceRepository) Create(ctx context.Context, src *models.Source) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (case_id, title, url, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Sources)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		src.CaseID,
		src.Title,
		src.URL,
		src.Content,
		src.CreatedAt,
		src.UpdatedAt,
	).Scan(&src.ID, &src.CreatedAt, &src.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("case %s: %w", src.CaseID, domain.ErrNotFound)
		}
		return fmt.Errorf("create source: %w", err)
	}

	return nil
}

// GetByID retrieves a source of a case
func (r *PostgresSourceRepository) GetByID(ctx context.Context, id, caseID string) (*models.Source, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.case_id, s.title, s.url, s.content,
		       (SELECT COUNT(*) FROM %s l WHERE l.source_id = s.id),
		       s.created_at, s.updated_at
		FROM %s s
		WHERE s.id = $1 AND s.case_id = $2
	`, r.tables.ArgumentSources, r.tables.Sources)

	var src models.Source
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, caseID).Scan(
		&src.ID,
		&src.CaseID,
		&src.Title,
		&src.URL,
		&src.Content,
		&src.ArgumentCount,
		&src.CreatedAt,
		&src.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get source: %w", err)
	}

	return &src, nil
}

// ListByCase retrieves the sources of a case ordered by created_at DESC
func (r *PostgresSourceRepository) ListByCase(ctx context.Context, caseID string) ([]models.Source, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.case_id, s.title, s.url, s.content,
		       COUNT(l.argument_id),
		       s.created_at, s.updated_at
		FROM %s s
		LEFT JOIN %s l ON l.source_id = s.id
		WHERE s.case_id = $1
		GROUP BY s.id
		ORDER BY s.created_at DESC
	`, r.tables.Sources, r.tables.ArgumentSources)

	return r.list(ctx, query, caseID)
}

// ListByArgument retrieves the sources linked to an argument ordered by created_at DESC
func (r *PostgresSourceRepository) ListByArgument(ctx context.Context, argumentID, caseID string) ([]models.Source, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.case_id, s.title, s.url, s.content,
		       (SELECT COUNT(*) FROM %s c WHERE c.source_id = s.id),
		       s.created_at, s.updated_at
		FROM %s s
		JOIN %s l ON l.source_id = s.id
		WHERE l.argument_id = $1 AND s.case_id = $2
		ORDER BY s.created_at DESC
	`, r.tables.ArgumentSources, r.tables.Sources, r.tables.ArgumentSources)

	return r.list(ctx, query, argumentID, caseID)
}

func (r *PostgresSourceRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Source, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	sources := []models.Source{}
	for rows.Next() {
		var src models.Source
		err := rows.Scan(
			&src.ID,
			&src.CaseID,
			&src.Title,
			&src.URL,
			&src.Content,
			&src.ArgumentCount,
			&src.CreatedAt,
			&src.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sources: %w", err)
	}

	return sources, nil
}

// Update persists title, url, content and updated_at
func (r *PostgresSourceRepository) Update(ctx context.Context, src *models.Source) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, url = $2, content = $3, updated_at = $4
		WHERE id = $5 AND case_id = $6
	`, r.tables.Sources)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		src.Title,
		src.URL,
		src.Content,
		src.UpdatedAt,
		src.ID,
		src.CaseID,
	)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("source %s: %w", src.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a source; its links cascade
func (r *PostgresSourceRepository) Delete(ctx context.Context, id, caseID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND case_id = $2`, r.tables.Sources)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, caseID)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("source %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Link attaches a source to an argument; linking twice is a no-op
func (r *PostgresSourceRepository) Link(ctx context.Context, sourceID, argumentID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (argument_id, source_id)
		VALUES ($1, $2)
		ON CONFLICT (argument_id, source_id) DO NOTHING
	`, r.tables.ArgumentSources)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, argumentID, sourceID); err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("link source %s to argument %s: %w", sourceID, argumentID, domain.ErrNotFound)
		}
		return fmt.Errorf("link source: %w", err)
	}

	return nil
}

// Unlink detaches a source from an argument
func (r *PostgresSourceRepository) Unlink(ctx context.Context, sourceID, argumentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE argument_id = $1 AND source_id = $2`, r.tables.ArgumentSources)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, argumentID, sourceID); err != nil {
		return fmt.Errorf("unlink source: %w", err)
	}

	return nil
}
