// Package main is the entry point for the expense tracker core.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/expense-tracker/core/config"
	"github.com/expense-tracker/core/internal/infra/db"
	"github.com/expense-tracker/core/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting expense tracker core",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Open the local store
	database, err := db.NewSQLiteConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to open local store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close local store", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run local store migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Local store migrations completed successfully")

	// Wire the application
	injector := dependency.NewInjector(cfg, database.DB())

	// Seed the starter categories on first launch
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if seeded, err := injector.SeedCategories.Execute(ctx); err != nil {
		slog.Error("Failed to seed starter categories", "error", err)
		os.Exit(1)
	} else if seeded.Seeded > 0 {
		slog.Info("Seeded starter categories", "count", seeded.Seeded)
	}

	// Start the budget-alert worker
	if cfg.Email.WorkerEnabled {
		go injector.Worker.Start(ctx)
	}

	// Start the localhost API server
	engine := injector.Router.Setup(cfg.Server.Environment)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("API server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down API server", "error", err)
	}
}
