package dossier

import (
	"context"
	"fmt"
	"strings"

	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	dossierRepo "arguminds/internal/domain/repositories/dossier"

	"arguminds/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCaseRepository implements the CaseRepository interface
type PostgresCaseRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(config *postgres.RepositoryConfig) dossierRepo.CaseRepository {
	return &PostgresCaseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new case
func (r *PostgresCaseRepository) Create(ctx context.Context, c *models.Case) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, description, type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Cases)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		c.UserID,
		c.Title,
		c.Description,
		c.Type,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create case: %w", err)
	}

	return nil
}

// GetByID retrieves a case owned by userID
func (r *PostgresCaseRepository) GetByID(ctx context.Context, id, userID string) (*models.Case, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, type, status, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Cases)

	var c models.Case
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, userID).Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Description,
		&c.Type,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get case: %w", err)
	}

	return &c, nil
}

// List retrieves the user's cases matching filter, ordered by updated_at DESC
func (r *PostgresCaseRepository) List(ctx context.Context, userID string, filter models.CaseFilter) ([]models.Case, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, type, status, created_at, updated_at
		FROM %s
		WHERE %s
		ORDER BY updated_at DESC
	`, r.tables.Cases, strings.Join(conditions, " AND "))

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var cases []models.Case
	for rows.Next() {
		var c models.Case
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Title,
			&c.Description,
			&c.Type,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}

	if cases == nil {
		cases = []models.Case{}
	}

	return cases, nil
}

// Update persists title, description, type, status and updated_at
func (r *PostgresCaseRepository) Update(ctx context.Context, c *models.Case) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, type = $3, status = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`, r.tables.Cases)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		c.Title,
		c.Description,
		c.Type,
		c.Status,
		c.UpdatedAt,
		c.ID,
		c.UserID,
	)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("case %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

// Touch bumps updated_at
func (r *PostgresCaseRepository) Touch(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET updated_at = NOW() WHERE id = $1`, r.tables.Cases)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("touch case: %w", err)
	}
	return nil
}

// Delete hard-deletes a case; arguments, sources and analyses cascade
func (r *PostgresCaseRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Cases)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
