package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/events"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// CommentService manages comments on videos.
type CommentService interface {
	List(ctx context.Context, videoID uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.CommentView], error)
	Create(ctx context.Context, actor, videoID uuid.UUID, content string) (*models.CommentView, error)
	Update(ctx context.Context, actor, id uuid.UUID, content string) (*models.CommentView, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
	events   notifier
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository, publisher events.Publisher) CommentService {
	return &commentService{comments: comments, videos: videos, events: notifier{publisher: publisher}}
}

// visibleVideo checks that the video exists and viewer may see it.
func (s *commentService) visibleVideo(ctx context.Context, videoID, viewer uuid.UUID) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return lookupError(err, "Video does not exist!", "get video")
	}
	if !video.IsPublished && video.OwnerID != viewer {
		return &NotFoundError{Message: "Video does not exist!"}
	}
	return nil
}

func (s *commentService) List(ctx context.Context, videoID uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.CommentView], error) {
	if err := s.visibleVideo(ctx, videoID, viewer); err != nil {
		return nil, err
	}
	p, err := s.comments.ListByVideo(ctx, videoID, page, viewer)
	if err != nil {
		return nil, processingError("list comments", err)
	}
	return p, nil
}

func (s *commentService) Create(ctx context.Context, actor, videoID uuid.UUID, content string) (*models.CommentView, error) {
	if blank(content) {
		return nil, &ValidationError{Message: "Content is required!"}
	}
	if err := s.visibleVideo(ctx, videoID, actor); err != nil {
		return nil, err
	}

	comment := &models.Comment{VideoID: videoID, OwnerID: actor, Content: strings.TrimSpace(content)}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, processingError("create comment", err)
	}

	logger.Log.Info("Comment added",
		zap.String("commentId", comment.ID.String()),
		zap.String("videoId", videoID.String()),
	)
	s.events.emit(ctx, events.CommentCreated, actor, comment.ID, map[string]any{"videoId": videoID})

	v, err := s.comments.GetView(ctx, comment.ID, actor)
	if err != nil {
		return nil, processingError("load comment", err)
	}
	return v, nil
}

func (s *commentService) owned(ctx context.Context, actor, id uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "Comment does not exist!", "get comment")
	}
	if comment.OwnerID != actor {
		return notOwner()
	}
	return nil
}

func (s *commentService) Update(ctx context.Context, actor, id uuid.UUID, content string) (*models.CommentView, error) {
	if blank(content) {
		return nil, &ValidationError{Message: "Content is required!"}
	}
	if err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.comments.UpdateContent(ctx, id, strings.TrimSpace(content)); err != nil {
		return nil, lookupError(err, "Comment does not exist!", "update comment")
	}

	v, err := s.comments.GetView(ctx, id, actor)
	if err != nil {
		return nil, lookupError(err, "Comment does not exist!", "load comment")
	}
	return v, nil
}

func (s *commentService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return lookupError(err, "Comment does not exist!", "delete comment")
	}
	logger.Log.Info("Comment deleted", zap.String("commentId", id.String()))
	return nil
}
