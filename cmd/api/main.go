package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"honeypot-lab/internal/api"
	"honeypot-lab/internal/api/handlers"
	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/infrastructure/cache"
	"honeypot-lab/internal/infrastructure/database"
	"honeypot-lab/internal/infrastructure/database/repository"
	"honeypot-lab/internal/infrastructure/store"
	"honeypot-lab/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting Honeypot Lab")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure
	db, redisCache, err := initInfrastructure(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize infrastructure")
	}
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Compile the pattern library; a malformed rule is a startup failure
	patterns, err := services.NewPatternLibrary(services.DefaultPatternConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to compile pattern library")
	}
	log.Info().
		Str("version", patterns.Version).
		Int("keywords", len(patterns.SuspiciousKeywords)).
		Msg("pattern library compiled")

	// Initialize the report archive when a database is available
	var archive services.ReportArchive
	var reportReader handlers.ReportReader
	if db != nil {
		reports := repository.NewReportRepository(db)
		if err := reports.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare report schema")
		}
		archive = reports
		reportReader = reports
		log.Info().Msg("report archive initialized")
	} else {
		log.Warn().Msg("running without database - reports will not be archived")
	}

	// Initialize services
	extractor := services.NewExtractor(patterns, cfg.Engine, log)
	scorer := services.NewRiskScorer(cfg.Scoring)
	sessionStore := store.NewRedisSessionStore(redisCache, cfg.Session.TTL)

	var sender services.ReportSender
	if cfg.Callback.Enabled && cfg.Callback.URL != "" {
		sender = services.NewCallbackClient(cfg.Callback, log)
		log.Info().Str("url", cfg.Callback.URL).Msg("result callback enabled")
	}

	sessionService := services.NewSessionService(
		sessionStore,
		extractor,
		scorer,
		services.NewStallReplyGenerator(),
		sender,
		archive,
		cfg.Scoring,
		cfg.Callback,
		log,
	)

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Sessions:  sessionService,
		Extractor: extractor,
		Scorer:    scorer,
		Patterns:  patterns,
		Reports:   reportReader,
		Cache:     redisCache,
		DB:        db,
		Logger:    log,
	})

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure initializes database and cache connections.
// Redis is required (it holds session state); PostgreSQL is optional.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache, error) {
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		var err error
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
			db = nil
		}
	}

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		return db, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return db, redisCache, nil
}
