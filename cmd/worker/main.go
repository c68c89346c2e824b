package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vidtube/vidtube-api-go/internal/config"
	"github.com/vidtube/vidtube-api-go/internal/queue"
	"github.com/vidtube/vidtube-api-go/internal/storage"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logger.Log.Error("worker exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Log.Info("Asset worker starting", zap.Int("concurrency", cfg.Worker.Concurrency))

	store, err := storage.NewMinioStore(context.Background(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("initialize asset store: %w", err)
	}

	server, err := queue.NewServer(cfg.Redis.URL, cfg.Worker.Concurrency, queue.NewAssetCleanupHandler(store))
	if err != nil {
		return fmt.Errorf("create queue server: %w", err)
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("start queue server: %w", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	sig := <-shutdown
	logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	server.Shutdown()
	logger.Log.Info("Asset worker stopped gracefully")

	return nil
}
