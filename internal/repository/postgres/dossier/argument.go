package dossier

import (
	"context"
	"fmt"

	"arguminds/internal/domain"
	models "arguminds/internal/domain/models/dossier"
	dossierRepo "arguminds/internal/domain/repositories/dossier"

	"arguminds/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresArgumentRepository implements the ArgumentRepository interface
type PostgresArgumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewArgumentRepository creates a new argument repository
func NewArgumentRepository(config *postgres.RepositoryConfig) dossierRepo.ArgumentRepository {
	return &PostgresArgumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// selectArguments returns the SELECT used by GetByID and ListByCase.
// Linked sources are aggregated into a JSON array of {id, title, url}.
func (r *PostgresArgumentRepository) selectArguments(where, order string) string {
	return fmt.Sprintf(`
		SELECT a.id, a.case_id, a.title, a.content, a.type, a.parent_id,
		       a.position_x, a.position_y, a.created_at, a.updated_at,
		       COALESCE(
		           json_agg(json_build_object('id', s.id, 'title', s.title, 'url', s.url) ORDER BY s.created_at)
		               FILTER (WHERE s.id IS NOT NULL),
		           '[]'
		       ) AS sources
		FROM %s a
		LEFT JOIN %s l ON l.argument_id = a.id
		LEFT JOIN %s s ON s.id = l.source_id
		WHERE %s
		GROUP BY a.id
		%s
	`, r.tables.Arguments, r.tables.ArgumentSources, r.tables.Sources, where, order)
}

func scanArgument(row pgx.Row) (*models.Argument, error) {
	var arg models.Argument
	var x, y *float64
	err := row.Scan(
		&arg.ID,
		&arg.CaseID,
		&arg.Title,
		&arg.Content,
		&arg.Type,
		&arg.ParentID,
		&x,
		&y,
		&arg.CreatedAt,
		&arg.UpdatedAt,
		&arg.Sources,
	)
	if err != nil {
		return nil, err
	}
	if x != nil && y != nil {
		arg.Position = &models.Position{X: *x, Y: *y}
	}
	if arg.Sources == nil {
		arg.Sources = []models.SourceRef{}
	}
	return &arg, nil
}

// Create creates a new argument
func (r *PostgresArgumentRepository) Create(ctx context.Context, arg *models.Argument) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (case_id, title, content, type, parent_id, position_x, position_y, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, r.tables.Arguments)

	var x, y *float64
	if arg.Position != nil {
		x, y = &arg.Position.X, &arg.Position.Y
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		arg.CaseID,
		arg.Title,
		arg.Content,
		arg.Type,
		arg.ParentID,
		x,
		y,
		arg.CreatedAt,
		arg.UpdatedAt,
	).Scan(&arg.ID, &arg.CreatedAt, &arg.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("argument references a missing case or parent: %w", domain.ErrValidation)
		}
		if postgres.IsPgInvalidTextError(err) {
			return fmt.Errorf("parent_id is not an argument ID: %w", domain.ErrValidation)
		}
		return fmt.Errorf("create argument: %w", err)
	}

	if arg.Sources == nil {
		arg.Sources = []models.SourceRef{}
	}
	return nil
}

// GetByID retrieves an argument of a case, with its linked sources
func (r *PostgresArgumentRepository) GetByID(ctx context.Context, id, caseID string) (*models.Argument, error) {
	query := r.selectArguments("a.id = $1 AND a.case_id = $2", "")

	executor := postgres.GetExecutor(ctx, r.pool)
	arg, err := scanArgument(executor.QueryRow(ctx, query, id, caseID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("argument %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get argument: %w", err)
	}

	return arg, nil
}

// ListByCase retrieves all arguments of a case ordered by created_at ASC
func (r *PostgresArgumentRepository) ListByCase(ctx context.Context, caseID string) ([]models.Argument, error) {
	query := r.selectArguments("a.case_id = $1", "ORDER BY a.created_at ASC, a.id ASC")

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("list arguments: %w", err)
	}
	defer rows.Close()

	arguments := []models.Argument{}
	for rows.Next() {
		arg, err := scanArgument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan argument: %w", err)
		}
		arguments = append(arguments, *arg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate arguments: %w", err)
	}

	return arguments, nil
}

// Update persists title, content, type, parent and updated_at
func (r *PostgresArgumentRepository) Update(ctx context.Context, arg *models.Argument) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, type = $3, parent_id = $4, updated_at = $5
		WHERE id = $6 AND case_id = $7
	`, r.tables.Arguments)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		arg.Title,
		arg.Content,
		arg.Type,
		arg.ParentID,
		arg.UpdatedAt,
		arg.ID,
		arg.CaseID,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("parent argument does not exist: %w", domain.ErrValidation)
		}
		if postgres.IsPgInvalidTextError(err) {
			return fmt.Errorf("parent_id is not an argument ID: %w", domain.ErrValidation)
		}
		return fmt.Errorf("update argument: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("argument %s: %w", arg.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePosition stores the graph canvas position
func (r *PostgresArgumentRepository) UpdatePosition(ctx context.Context, id, caseID string, pos models.Position) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET position_x = $1, position_y = $2
		WHERE id = $3 AND case_id = $4
	`, r.tables.Arguments)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, pos.X, pos.Y, id, caseID)
	if err != nil {
		return fmt.Errorf("update argument position: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("argument %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetParent points an argument at a new parent (nil detaches it)
func (r *PostgresArgumentRepository) SetParent(ctx context.Context, id, caseID string, parentID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, updated_at = NOW()
		WHERE id = $2 AND case_id = $3
	`, r.tables.Arguments)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, parentID, id, caseID)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("parent argument does not exist: %w", domain.ErrValidation)
		}
		if postgres.IsPgInvalidTextError(err) {
			return fmt.Errorf("parent_id is not an argument ID: %w", domain.ErrValidation)
		}
		return fmt.Errorf("set argument parent: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("argument %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an argument. The parent_id foreign key is ON DELETE SET NULL,
// so children become roots.
func (r *PostgresArgumentRepository) Delete(ctx context.Context, id, caseID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND case_id = $2`, r.tables.Arguments)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, caseID)
	if err != nil {
		return fmt.Errorf("delete argument: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("argument %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
