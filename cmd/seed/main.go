package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"arguminds/internal/auth"
	"arguminds/internal/config"
	"arguminds/internal/repository/postgres"
	postgresDossier "arguminds/internal/repository/postgres/dossier"
	serviceAuth "arguminds/internal/service/auth"
	serviceDossier "arguminds/internal/service/dossier"
	"arguminds/internal/seed"
)

const (
	demoEmail    = "demo@arguminds.local"
	demoPassword = "arguminds-demo"
	demoName     = "Maître Démo"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Delete the demo user's cases (keep schema)")
	userID := flag.String("user-id", "", "Seed for this user ID instead of creating the demo user in Supabase")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := config.NewLogger(cfg.Environment, os.Stdout)

	switch {
	case *clearData:
		log.Printf("🧹 Clearing demo data (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	case *schemaOnly:
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	default:
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	owner := *userID
	if owner == "" {
		owner, err = ensureDemoUser(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to ensure demo user: %v", err)
		}
	}

	// Create repositories and services
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	caseRepo := postgresDossier.NewCaseRepository(repoConfig)
	argumentRepo := postgresDossier.NewArgumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(repoConfig)
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(caseRepo, argumentRepo)

	seeder := seed.NewDossierSeeder(seed.Services{
		Cases:     serviceDossier.NewCaseService(caseRepo, logger),
		Arguments: serviceDossier.NewArgumentService(argumentRepo, caseRepo, txManager, authorizer, logger),
		Sources:   serviceDossier.NewSourceService(postgresDossier.NewSourceRepository(repoConfig), caseRepo, txManager, authorizer, logger),
		Profiles:  serviceDossier.NewProfileService(postgresDossier.NewProfileRepository(repoConfig), logger),
	}, logger)

	// Start from a clean slate for this user
	log.Println("⚠️  Clearing existing cases...")
	removed, err := seeder.ClearUserCases(ctx, owner)
	if err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	log.Printf("✅ Removed %d case(s)", removed)

	if *clearData {
		return
	}

	log.Println("📝 Seeding demo case...")
	result, err := seeder.SeedDemoCase(ctx, owner)
	if err != nil {
		log.Fatalf("Failed to seed demo case: %v", err)
	}

	log.Printf("✅ Created case %s: %d arguments, %d sources, %d links",
		result.CaseID, result.Arguments, result.Sources, result.Links)
	log.Println("🎉 Seeding complete!")
}

// ensureDemoUser creates the demo account through the Supabase Admin API, or reuses it
func ensureDemoUser(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		log.Fatalf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required unless --user-id is given")
	}

	admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	id, err := admin.EnsureUser(ctx, demoEmail, demoPassword, demoName)
	if err != nil {
		return "", err
	}
	log.Printf("👤 Demo user %s (%s), password %q", demoEmail, id, demoPassword)
	return id, nil
}

// dropAllTables drops all tables children first (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range postgres.DropOrder(tables) {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}
