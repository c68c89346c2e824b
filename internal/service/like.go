package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/events"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

var missingTarget = map[models.TargetKind]string{
	models.TargetVideo:   "Video does not exist!",
	models.TargetComment: "Comment does not exist!",
	models.TargetTweet:   "Tweet does not exist!",
}

// LikeService toggles likes and lists liked videos.
type LikeService interface {
	// Toggle flips the actor's like on target and returns the new state.
	Toggle(ctx context.Context, actor uuid.UUID, target models.LikeTarget) (bool, error)
	LikedVideos(ctx context.Context, actor uuid.UUID) ([]models.LikedVideoView, error)
}

type likeService struct {
	likes  repository.LikeRepository
	events notifier
}

// NewLikeService creates a new LikeService.
func NewLikeService(likes repository.LikeRepository, publisher events.Publisher) LikeService {
	return &likeService{likes: likes, events: notifier{publisher: publisher}}
}

func (s *likeService) Toggle(ctx context.Context, actor uuid.UUID, target models.LikeTarget) (bool, error) {
	msg, ok := missingTarget[target.Kind]
	if !ok {
		return false, &ValidationError{Message: "Invalid like target!"}
	}

	exists, err := s.likes.TargetExists(ctx, target)
	if err != nil {
		return false, processingError("check like target", err)
	}
	if !exists {
		return false, &NotFoundError{Message: msg}
	}

	liked, err := s.likes.Toggle(ctx, target, actor)
	if err != nil {
		return false, processingError("toggle like", err)
	}

	logger.Log.Info("Like toggled",
		zap.Stringer("target", target),
		zap.String("userId", actor.String()),
		zap.Bool("liked", liked),
	)
	s.events.emit(ctx, events.LikeToggled, actor, target.ID, map[string]any{
		"kind":  target.Kind,
		"liked": liked,
	})
	return liked, nil
}

func (s *likeService) LikedVideos(ctx context.Context, actor uuid.UUID) ([]models.LikedVideoView, error) {
	videos, err := s.likes.LikedVideos(ctx, actor)
	if err != nil {
		return nil, processingError("list liked videos", err)
	}
	return videos, nil
}
