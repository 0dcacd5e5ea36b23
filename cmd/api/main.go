package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-diet/internal/archive"
	"daily-diet/internal/auth"
	"daily-diet/internal/config"
	"daily-diet/internal/database"
	"daily-diet/internal/handler"
	"daily-diet/internal/observability"
	"daily-diet/internal/repository"
	"daily-diet/internal/router"
	"daily-diet/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger).Hook(observability.TraceHook{})
	logger.Info().
		Str("auth_mode", cfg.Auth.Mode).
		Msg("starting daily-diet API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize tracing
	if cfg.Tracing.Enabled {
		shutdownTracer, err := observability.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			if err := shutdownTracer(flushCtx); err != nil {
				logger.Error().Err(err).Msg("failed to flush traces")
			}
		}()
		logger.Info().Str("endpoint", cfg.Tracing.Endpoint).Msg("tracing enabled")
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(registry)

	// Initialize repositories
	mealRepo := repository.NewMealRepository(pool, prom, logger)
	userRepo := repository.NewUserRepository(pool, prom, logger)

	// Initialize access guard
	var resolver auth.Resolver = auth.TokenResolver{}
	if cfg.Auth.Mode == config.AuthModeUser {
		resolver = auth.NewUserResolver(userRepo)
	}
	guard := auth.NewGuard(resolver, logger)

	// Initialize archive store with S3 and local fallback
	archiveStore := newArchiveStore(ctx, cfg.Archive, logger)

	// Initialize services
	mealService := service.NewMealService(mealRepo, archiveStore, logger)
	userService := service.NewUserService(userRepo, logger)

	// Initialize HTTP handlers
	mealHandler := handler.NewMealHandler(mealService, logger)
	userHandler := handler.NewUserHandler(userService, handler.SessionCookie{
		Name:   cfg.Auth.CookieName,
		MaxAge: cfg.Auth.CookieMaxAge,
	}, logger)

	// Initialize router
	mux := router.New(mealHandler, userHandler, router.Session{
		Guard:      guard,
		CookieName: cfg.Auth.CookieName,
		HeaderName: cfg.Auth.HeaderName,
	}, prom, registry, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newArchiveStore builds the export store. An S3 client that cannot be
// initialised leaves the local directory as the only target.
func newArchiveStore(ctx context.Context, cfg config.ArchiveConfig, logger zerolog.Logger) archive.Store {
	fileStore := archive.NewFileStore(cfg.LocalDir, logger)

	if !cfg.S3Enabled {
		logger.Info().Str("dir", cfg.LocalDir).Msg("using local file system for meal exports (S3 disabled)")
		return fileStore
	}

	s3Store, err := archive.NewS3Store(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system only")
		return fileStore
	}

	return archive.NewFallbackStore(s3Store, fileStore, cfg.Prefix, true, logger)
}
