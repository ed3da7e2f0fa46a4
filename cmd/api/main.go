package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mystic-books/internal/auth"
	"mystic-books/internal/config"
	"mystic-books/internal/database"
	"mystic-books/internal/handler"
	"mystic-books/internal/payment"
	"mystic-books/internal/repository"
	"mystic-books/internal/router"
	"mystic-books/internal/service"
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
	logger.Info().Msg("starting mystic-books API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	bookRepo := repository.NewBookRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	statsRepo := repository.NewStatsRepository(pool, logger)

	// Initialize external collaborators
	verifier := auth.NewJWTVerifier(cfg.Auth.JWTSecret)
	stripeClient := payment.NewStripeClient(cfg.Stripe, logger)

	// Initialize services
	userService := service.NewUserService(userRepo, logger)
	bookService := service.NewBookService(bookRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	paymentService := service.NewPaymentService(orderRepo, bookRepo, stripeClient, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, logger)
	statsService := service.NewStatsService(statsRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		User:     handler.NewUserHandler(userService, logger),
		Book:     handler.NewBookHandler(bookService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Payment:  handler.NewPaymentHandler(paymentService, logger),
		Wishlist: handler.NewWishlistHandler(wishlistService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Stats:    handler.NewStatsHandler(statsService, logger),
	}

	// Initialize router
	mux := router.New(handlers, verifier, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
