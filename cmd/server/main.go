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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vidtube/vidtube-api-go/internal/auth"
	"github.com/vidtube/vidtube-api-go/internal/config"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/events"
	"github.com/vidtube/vidtube-api-go/internal/handler"
	"github.com/vidtube/vidtube-api-go/internal/middleware"
	"github.com/vidtube/vidtube-api-go/internal/queue"
	"github.com/vidtube/vidtube-api-go/internal/service"
	"github.com/vidtube/vidtube-api-go/internal/storage"
	"github.com/vidtube/vidtube-api-go/internal/validation"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logger.Log.Error("server exited", zap.Error(err))
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

	gin.SetMode(gin.ReleaseMode)
	if err := validation.Register(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, db.ConfigFrom(cfg.Database))
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.Close(pool)

	logger.Log.Info("Database connection established",
		zap.Int32("maxConns", pool.Config().MaxConns),
	)

	store, err := storage.NewMinioStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("initialize asset store: %w", err)
	}

	queueClient, err := queue.NewClient(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("initialize queue client: %w", err)
	}
	defer queueClient.Close()

	redisClient, err := queue.NewRedisClient(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("initialize redis client: %w", err)
	}
	defer redisClient.Close()

	publisher, amqpPublisher := newPublisher(&cfg.RabbitMQ)
	defer publisher.Close()

	tokens, err := auth.NewManager(cfg.Auth)
	if err != nil {
		return fmt.Errorf("initialize token verifier: %w", err)
	}

	uploads, err := handler.NewUploader(cfg.Server.UploadDir, cfg.Server.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("initialize uploads: %w", err)
	}

	videoRepo := repository.NewVideoRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	tweetRepo := repository.NewTweetRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	likeRepo := repository.NewLikeRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	playlistRepo := repository.NewPlaylistRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	videoService := service.NewVideoService(videoRepo, userRepo, store, queueClient, publisher)
	tweetService := service.NewTweetService(tweetRepo, userRepo, publisher)
	commentService := service.NewCommentService(commentRepo, videoRepo, publisher)
	likeService := service.NewLikeService(likeRepo, publisher)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, publisher)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, videoRepo)
	userService := service.NewUserService(userRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error { return pool.Ping(ctx) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}
	if amqpPublisher != nil {
		checks["rabbitmq"] = func(context.Context) error {
			if !amqpPublisher.IsHealthy() {
				return errors.New("connection closed")
			}
			return nil
		}
	}

	router := handler.NewRouter(handler.RouterConfig{
		Videos:             handler.NewVideoHandler(videoService, uploads),
		Tweets:             handler.NewTweetHandler(tweetService),
		Comments:           handler.NewCommentHandler(commentService),
		Likes:              handler.NewLikeHandler(likeService),
		Subscriptions:      handler.NewSubscriptionHandler(subscriptionService),
		Playlists:          handler.NewPlaylistHandler(playlistService),
		Dashboard:          handler.NewDashboardHandler(dashboardService),
		Users:              handler.NewUserHandler(userService),
		Health:             handler.NewHealthHandler(checks),
		Auth:               middleware.NewAuthenticator(tokens, cfg.Auth.CookieName),
		Metrics:            metrics,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSOrigin:         cfg.Server.CORSOrigin,
		MaxMultipartMemory: 32 << 20,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("Graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("Failed to close server", zap.Error(err))
			}
			return err
		}

		logger.Log.Info("Server stopped gracefully")
	}

	return nil
}

// newPublisher connects to RabbitMQ when enabled. Events are dropped through
// a NopPublisher when the broker is disabled or unreachable at startup.
func newPublisher(cfg *config.RabbitMQConfig) (events.Publisher, *events.AMQPPublisher) {
	if !cfg.Enabled {
		logger.Log.Info("RabbitMQ disabled, domain events will not be published")
		return events.NopPublisher{}, nil
	}

	p, err := events.NewAMQPPublisher(cfg)
	if err != nil {
		logger.Log.Warn("Failed to connect to RabbitMQ, domain events will not be published",
			zap.Error(err),
			zap.String("host", cfg.Host),
		)
		return events.NopPublisher{}, nil
	}

	logger.Log.Info("RabbitMQ publisher connected", zap.String("exchange", cfg.Exchange))
	return p, p
}
