package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaStatements returns the CREATE statements for every table and index,
// in dependency order. All statements are idempotent.
func SchemaStatements(tables *TableNames, prefix string) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Cases + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT,
			status TEXT NOT NULL DEFAULT 'EN_COURS',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Arguments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			case_id UUID NOT NULL REFERENCES ` + tables.Cases + `(id) ON DELETE CASCADE,
			parent_id UUID REFERENCES ` + tables.Arguments + `(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			type TEXT NOT NULL,
			position_x DOUBLE PRECISION,
			position_y DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Sources + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			case_id UUID NOT NULL REFERENCES ` + tables.Cases + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			url TEXT,
			content TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.ArgumentSources + ` (
			argument_id UUID NOT NULL REFERENCES ` + tables.Arguments + `(id) ON DELETE CASCADE,
			source_id UUID NOT NULL REFERENCES ` + tables.Sources + `(id) ON DELETE CASCADE,
			PRIMARY KEY (argument_id, source_id)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Analyses + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			argument_id UUID NOT NULL REFERENCES ` + tables.Arguments + `(id) ON DELETE CASCADE,
			action TEXT NOT NULL,
			result JSONB NOT NULL,
			model TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + tables.Profiles + ` (
			user_id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'AVOCAT',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `cases_user_updated ON ` + tables.Cases + `(user_id, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `arguments_case_created ON ` + tables.Arguments + `(case_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `arguments_parent ON ` + tables.Arguments + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `sources_case_created ON ` + tables.Sources + `(case_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `argument_sources_source ON ` + tables.ArgumentSources + `(source_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `ai_analyses_argument_created ON ` + tables.Analyses + `(argument_id, created_at DESC)`,
	}
}

// DropOrder lists the tables children first, so drops respect foreign keys
func DropOrder(tables *TableNames) []string {
	return []string{
		tables.Analyses,
		tables.ArgumentSources,
		tables.Sources,
		tables.Arguments,
		tables.Cases,
		tables.Profiles,
	}
}

// EnsureSchema creates missing tables and indexes
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, prefix string) error {
	for _, stmt := range SchemaStatements(tables, prefix) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run schema: %w", err)
		}
	}
	return nil
}
