package dossier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	models "arguminds/internal/domain/models/dossier"
	dossierRepo "arguminds/internal/domain/repositories/dossier"
	"arguminds/internal/repository/postgres"
)

// PostgresProfileRepository implements the ProfileRepository interface
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewProfileRepository creates a new PostgresProfileRepository
func NewProfileRepository(config *postgres.RepositoryConfig) dossierRepo.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByUserID retrieves the profile of a user
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT user_id, name, role, created_at, updated_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.Profiles)

	var profile models.Profile
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Role,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			// No profile yet - not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}

// Upsert creates or updates a profile
func (r *PostgresProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, name, role, created_at, updated_at
	`, r.tables.Profiles)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Role,
		profile.CreatedAt,
		profile.UpdatedAt,
	).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Role,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	r.logger.Debug("profile upserted", "user_id", profile.UserID, "role", profile.Role)
	return nil
}
