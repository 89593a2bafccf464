package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogo/internal/config"
	"catalogo/internal/database"
	"catalogo/internal/gemini"
	"catalogo/internal/handler"
	"catalogo/internal/repository"
	"catalogo/internal/router"
	"catalogo/internal/service"
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
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting catalogo API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool. In production mode this also
	// materializes the TLS root certificate before connecting.
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema migrations
	connString, err := database.ConnString(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to build connection string: %w", err)
	}
	if err := database.Migrate(connString, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repository
	productRepo := repository.NewProductRepository(pool, logger)

	// Initialize the generative-text client
	generator := gemini.NewClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.BaseURL,
		time.Duration(cfg.Gemini.Timeout)*time.Second,
		logger,
	)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	descriptionService := service.NewDescriptionService(generator, logger)
	authService := service.NewAuthService(cfg.Auth, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	descriptionHandler := handler.NewDescriptionHandler(descriptionService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)

	// Initialize router
	mux := router.New(productHandler, descriptionHandler, authHandler, cfg.Auth.JWTSecret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
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
