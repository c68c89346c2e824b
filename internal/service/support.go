package service

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/events"
	"github.com/vidtube/vidtube-api-go/internal/queue"
	"github.com/vidtube/vidtube-api-go/internal/storage"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// notifier publishes domain events. A failed publish is logged and dropped.
type notifier struct {
	publisher events.Publisher
}

func (n notifier) emit(ctx context.Context, eventType string, actor, subject uuid.UUID, data map[string]any) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, events.New(eventType, actor, subject, data)); err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("subjectId", subject.String()),
		)
	}
}

// assetCleaner deletes assets on the request path and hands failures to
// the background queue.
type assetCleaner struct {
	store storage.AssetStore
	queue queue.Enqueuer
}

func (a assetCleaner) remove(ctx context.Context, kind storage.Kind, publicID, reason string) {
	if publicID == "" {
		return
	}
	err := a.store.Delete(ctx, kind, publicID)
	if err == nil {
		return
	}

	logger.Log.Warn("Asset deletion failed, scheduling retry",
		zap.Error(err),
		zap.String("kind", string(kind)),
		zap.String("publicId", publicID),
	)
	if a.queue == nil {
		return
	}
	if err := a.queue.EnqueueAssetDelete(context.WithoutCancel(ctx), kind, publicID, reason); err != nil {
		logger.Log.Error("Failed to schedule asset deletion",
			zap.Error(err),
			zap.String("publicId", publicID),
		)
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// removeUploads deletes temporary upload files that will not reach the
// asset store.
func removeUploads(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Log.Warn("Failed to remove upload", zap.Error(err), zap.String("path", p))
		}
	}
}
