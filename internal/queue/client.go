package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/vidtube/vidtube-api-go/internal/storage"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

const (
	assetDeleteMaxRetry = 5
	assetDeleteTimeout  = 2 * time.Minute
	assetQueue          = "assets"
)

// Enqueuer schedules background work.
type Enqueuer interface {
	EnqueueAssetDelete(ctx context.Context, kind storage.Kind, publicID, reason string) error
}

// Client wraps the asynq client.
type Client struct {
	asynqClient *asynq.Client
}

// NewClient connects to the redis behind redisURL.
func NewClient(redisURL string) (*Client, error) {
	opt, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &Client{asynqClient: asynq.NewClient(opt)}, nil
}

func (c *Client) Close() error {
	return c.asynqClient.Close()
}

// EnqueueAssetDelete schedules deletion of an asset on the asset host.
func (c *Client) EnqueueAssetDelete(ctx context.Context, kind storage.Kind, publicID, reason string) error {
	payload, err := NewAssetDeletePayload(kind, publicID, reason)
	if err != nil {
		return fmt.Errorf("failed to create task payload: %w", err)
	}
	body, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	info, err := c.asynqClient.EnqueueContext(ctx, asynq.NewTask(TypeAssetDelete, body),
		asynq.MaxRetry(assetDeleteMaxRetry),
		asynq.Timeout(assetDeleteTimeout),
		asynq.Queue(assetQueue),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	logger.Log.Info("Enqueued asset deletion",
		zap.String("taskId", info.ID),
		zap.String("kind", string(kind)),
		zap.String("publicId", publicID),
	)
	return nil
}

// Queues returns the queue weights a worker should serve.
func Queues() map[string]int {
	return map[string]int{assetQueue: 1}
}
