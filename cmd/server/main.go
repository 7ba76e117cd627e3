package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"arguminds/internal/auth"
	"arguminds/internal/capabilities"
	"arguminds/internal/config"
	"arguminds/internal/export"
	"arguminds/internal/handler"
	"arguminds/internal/metrics"
	"arguminds/internal/middleware"
	"arguminds/internal/repository/postgres"
	postgresDossier "arguminds/internal/repository/postgres/dossier"
	serviceAuth "arguminds/internal/service/auth"
	serviceDossier "arguminds/internal/service/dossier"
	serviceLLM "arguminds/internal/service/llm"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging, teed into a rotated file when LOG_DIR is set
	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}
	logger := config.NewLogger(cfg.Environment, logOut)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names and make sure the schema exists
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	caseRepo := postgresDossier.NewCaseRepository(repoConfig)
	argumentRepo := postgresDossier.NewArgumentRepository(repoConfig)
	sourceRepo := postgresDossier.NewSourceRepository(repoConfig)
	analysisRepo := postgresDossier.NewAnalysisRepository(repoConfig)
	profileRepo := postgresDossier.NewProfileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(repoConfig)

	// Metrics (nil disables recording)
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	// Model catalogue and AI analysis
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}
	analysisCfg := setupAnalysis(cfg, capabilityRegistry, logger)

	// Create services
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(caseRepo, argumentRepo)
	caseService := serviceDossier.NewCaseService(caseRepo, logger)
	argumentService := serviceDossier.NewArgumentService(argumentRepo, caseRepo, txManager, authorizer, logger)
	sourceService := serviceDossier.NewSourceService(sourceRepo, caseRepo, txManager, authorizer, logger)
	exportService := serviceDossier.NewExportService(caseRepo, argumentRepo, sourceRepo, export.DefaultRegistry(), m, logger)
	analysisService := serviceDossier.NewAnalysisService(argumentRepo, analysisRepo, authorizer, analysisCfg, m, logger)
	profileService := serviceDossier.NewProfileService(profileRepo, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, &handler.Handlers{
		Health:   handler.NewHealthHandler(pool),
		Cases:    handler.NewCaseHandler(caseService, logger),
		Args:     handler.NewArgumentHandler(argumentService, logger),
		Sources:  handler.NewSourceHandler(sourceService, logger),
		Export:   handler.NewExportHandler(exportService, logger),
		Analysis: handler.NewAnalysisHandler(analysisService, logger),
		Profile:  handler.NewProfileHandler(profileService, logger),
		Models:   handler.NewModelsHandler(cfg, logger, capabilityRegistry),
	})
	if m != nil {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Metrics → Routes
	// Metrics sits next to the mux so it sees the matched pattern
	h = middleware.Metrics(m)(h)
	h = middleware.AuthMiddleware(jwtVerifier)(h)
	h = middleware.Recovery(logger, m)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // AI calls and large PDF exports
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// setupAnalysis wires the completer for DEFAULT_MODEL.
// A model missing from the catalogue only logs a warning; an unparseable one disables analysis.
func setupAnalysis(cfg *config.Config, registry *capabilities.Registry, logger *slog.Logger) serviceDossier.AnalysisConfig {
	prompts, err := serviceLLM.LoadPromptCatalog()
	if err != nil {
		log.Fatalf("Failed to load analysis prompts: %v", err)
	}

	model := cfg.DefaultModel
	info, err := serviceLLM.ParseModel(model)
	if err != nil {
		logger.Warn("AI analysis disabled", "model", model, "error", err)
		return serviceDossier.AnalysisConfig{Prompts: prompts, Model: model}
	}
	if _, err := registry.GetModelCapabilities(info.Provider, info.Model); err != nil {
		logger.Warn("default model is not in the catalogue", "model", model, "error", err)
	}

	factory := serviceLLM.NewProviderFactory(cfg)
	logger.Info("AI analysis configured", "provider", info.Provider, "model", info.Model)

	return serviceDossier.AnalysisConfig{
		Completer: serviceLLM.NewProviderCompleter(factory),
		Prompts:   prompts,
		Model:     model,
	}
}
