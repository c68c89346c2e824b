package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/vidtube/vidtube-api-go/internal/storage"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// AssetCleanupHandler processes TypeAssetDelete tasks.
type AssetCleanupHandler struct {
	store storage.AssetStore
}

// NewAssetCleanupHandler creates a handler deleting through store.
func NewAssetCleanupHandler(store storage.AssetStore) *AssetCleanupHandler {
	return &AssetCleanupHandler{store: store}
}

// ProcessTask implements asynq.Handler. A malformed payload is not retried.
func (h *AssetCleanupHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := UnmarshalAssetDeletePayload(task.Payload())
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.PublicID == "" {
		return fmt.Errorf("%w: empty public id", asynq.SkipRetry)
	}

	if err := h.store.Delete(ctx, payload.Kind, payload.PublicID); err != nil {
		logger.Log.Warn("Asset deletion failed, will retry",
			zap.Error(err),
			zap.String("publicId", payload.PublicID),
		)
		return err
	}

	logger.Log.Info("Deleted asset",
		zap.String("kind", string(payload.Kind)),
		zap.String("publicId", payload.PublicID),
		zap.String("reason", payload.Reason),
	)
	return nil
}

// NewServeMux registers every task handler.
func NewServeMux(assets *AssetCleanupHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeAssetDelete, assets)
	return mux
}

// Server processes queued tasks.
type Server struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
}

// NewServer creates a task processing server over the redis behind redisURL.
func NewServer(redisURL string, concurrency int, assets *AssetCleanupHandler) (*Server, error) {
	opt, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      Queues(),
		Logger:      logger.Named("asynq").Sugar(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Log.Error("Task failed",
				zap.Error(err),
				zap.String("type", task.Type()),
				zap.Int("retried", retried),
				zap.Int("maxRetry", maxRetry),
			)
		}),
	})

	return &Server{asynqServer: srv, mux: NewServeMux(assets)}, nil
}

// Start begins processing in the background.
func (s *Server) Start() error {
	logger.Log.Info("Starting task processing server")
	return s.asynqServer.Start(s.mux)
}

// Shutdown stops fetching new tasks and waits for active ones.
func (s *Server) Shutdown() {
	logger.Log.Info("Shutting down task processing server")
	s.asynqServer.Shutdown()
}
