package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ad-board/internal/adapter/genai"
	httpadapter "ad-board/internal/adapter/http"
	"ad-board/internal/adapter/postgres"
	"ad-board/internal/adapter/storage"
	"ad-board/internal/adapter/usecase"
	"ad-board/internal/config"
	"ad-board/internal/db"
	"ad-board/internal/metrics"
)

// main is the entry point of the ad-board service. It loads configuration,
// optionally runs database migrations, initializes the database pool,
// storage and generation clients, then starts the HTTP server. On receiving
// a termination signal it gracefully shuts down the server.
func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	// Optionally run migrations if configured.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemoData {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Warn("seed demo data", slog.Any("error", err))
		}
	}

	blobs := storage.NewClient(cfg.Storage)
	// Best effort: a missing bucket is created on first use anyway when
	// the storage backend allows it, so startup proceeds either way.
	if err = blobs.EnsureBucket(ctx); err != nil {
		logger.Warn("ensure storage bucket", slog.Any("error", err))
	}

	m := metrics.New("ad_board", prometheus.DefaultRegisterer)
	repo := postgres.NewAdRepository(pool)
	adSvc := usecase.NewAdService(repo, blobs, m, logger)
	genSvc := usecase.NewGenerationService(
		genai.NewHFClient(cfg.GenAI),
		genai.NewGeminiTranslator(cfg.GenAI),
		m, logger,
	)

	handler := httpadapter.NewHandler(adSvc, genSvc, logger)
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
