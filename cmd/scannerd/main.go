package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/SebJones333/Receipt-Scanner/internal/common"
	"github.com/SebJones333/Receipt-Scanner/internal/export"
	"github.com/SebJones333/Receipt-Scanner/internal/pipeline/scan"
	repo "github.com/SebJones333/Receipt-Scanner/internal/repository"
	"github.com/SebJones333/Receipt-Scanner/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repo.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(pool, logger)

	if err := repo.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database health OK")

	jobsRepo := repo.NewScanJobRepository(pool, logger)
	receiptsRepo := repo.NewReceiptRepository(pool, logger)
	pipeline := scan.NewPipeline(logger, scan.Config{MinConfidence: cfg.Scan.MinConfidence}, jobsRepo)
	exporter := export.NewService(receiptsRepo, logger)

	srv := server.New(logger, pipeline, receiptsRepo, exporter, cfg.Scan.MaxTextBytes)
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
