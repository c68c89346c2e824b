package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidtube/vidtube-api-go/internal/config"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

const defaultSweepInterval = 6 * time.Hour

func main() {
	if err := run(); err != nil {
		logger.Log.Error("sweeper exited", zap.Error(err))
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

	interval := cfg.Sweeper.Interval
	if interval <= 0 {
		logger.Log.Warn("Invalid sweep interval, using default",
			zap.Duration("value", interval),
			zap.Duration("default", defaultSweepInterval),
		)
		interval = defaultSweepInterval
	}

	log := logger.Named("sweeper")
	log.Info("Orphan sweeper starting", zap.Duration("interval", interval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, db.ConfigFrom(cfg.Database))
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close(pool)

	sweeper := &Sweeper{
		repo:   repository.NewMaintenanceRepository(pool),
		logger: log,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sweeper.Loop(ctx, ticker.C)
	log.Info("Orphan sweeper stopped gracefully")
	return nil
}

// Sweeper periodically removes references to records that no longer exist.
type Sweeper struct {
	repo   repository.MaintenanceRepository
	logger *zap.Logger
}

// Loop sweeps once immediately and then on every tick until ctx is done.
// A failed sweep is logged and the loop keeps going.
func (s *Sweeper) Loop(ctx context.Context, ticks <-chan time.Time) {
	s.logger.Info("Running initial sweep")
	if _, err := s.Sweep(ctx); err != nil {
		s.logger.Error("Initial sweep failed", zap.Error(err))
	}

	for {
		select {
		case <-ticks:
			s.logger.Info("Running scheduled sweep")
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("Scheduled sweep failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one pass and reports what it removed.
func (s *Sweeper) Sweep(ctx context.Context) (*repository.SweepResult, error) {
	start := time.Now()

	res, err := s.repo.SweepOrphans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep orphans: %w", err)
	}

	if res.Total() == 0 {
		s.logger.Info("No orphaned references found", zap.Duration("took", time.Since(start)))
		return res, nil
	}

	s.logger.Info("Sweep completed",
		zap.Int64("comments", res.Comments),
		zap.Int64("likes", res.Likes),
		zap.Int64("subscriptions", res.Subscriptions),
		zap.Int64("playlistEntries", res.PlaylistEntries),
		zap.Int64("historyEntries", res.HistoryEntries),
		zap.Int64("orphanedPlaylists", res.OrphanedPlaylists),
		zap.Int64("total", res.Total()),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}
