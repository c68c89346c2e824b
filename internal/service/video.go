package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/events"
	"github.com/vidtube/vidtube-api-go/internal/queue"
	"github.com/vidtube/vidtube-api-go/internal/storage"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// VideoQuery selects a page of the public video listing.
type VideoQuery struct {
	Search   string
	UserID   *uuid.UUID
	SortBy   string
	SortType string
	Page     view.PageRequest
}

// PublishVideoInput carries a new video. The paths point at temporary
// upload files, which are consumed.
type PublishVideoInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateVideoInput changes a video's details. ThumbnailPath is optional.
type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// VideoService manages videos.
type VideoService interface {
	List(ctx context.Context, q VideoQuery, viewer uuid.UUID) (*view.Page[models.VideoView], error)
	Publish(ctx context.Context, owner uuid.UUID, in PublishVideoInput) (*models.VideoView, error)

	// Watch returns the video as seen by viewer, counts the view and records
	// it in the viewer's history.
	Watch(ctx context.Context, id, viewer uuid.UUID) (*models.VideoView, error)

	Update(ctx context.Context, actor, id uuid.UUID, in UpdateVideoInput) (*models.VideoView, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
	TogglePublish(ctx context.Context, actor, id uuid.UUID) (bool, error)
}

type videoService struct {
	videos repository.VideoRepository
	users  repository.UserRepository
	store  storage.AssetStore
	assets assetCleaner
	events notifier
}

// NewVideoService creates a new VideoService.
func NewVideoService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	store storage.AssetStore,
	enqueuer queue.Enqueuer,
	publisher events.Publisher,
) VideoService {
	return &videoService{
		videos: videos,
		users:  users,
		store:  store,
		assets: assetCleaner{store: store, queue: enqueuer},
		events: notifier{publisher: publisher},
	}
}

func (s *videoService) List(ctx context.Context, q VideoQuery, viewer uuid.UUID) (*view.Page[models.VideoView], error) {
	filter := repository.VideoFilter{
		Search:  q.Search,
		OwnerID: q.UserID,
		SortBy:  q.SortBy,
		SortAsc: strings.EqualFold(q.SortType, "asc"),
	}

	if q.UserID != nil {
		exists, err := s.users.Exists(ctx, *q.UserID)
		if err != nil {
			return nil, processingError("check user", err)
		}
		if !exists {
			return nil, &NotFoundError{Message: "User does not exist!"}
		}
		// Owners browsing their own channel see their drafts too.
		filter.IncludeUnpublished = *q.UserID == viewer
	}

	page, err := s.videos.List(ctx, filter, q.Page, viewer)
	if err != nil {
		return nil, processingError("list videos", err)
	}
	return page, nil
}

func (s *videoService) Publish(ctx context.Context, owner uuid.UUID, in PublishVideoInput) (*models.VideoView, error) {
	if blank(in.Title) || blank(in.Description) {
		removeUploads(in.VideoPath, in.ThumbnailPath)
		return nil, &ValidationError{Message: "All fields are required!"}
	}
	if in.VideoPath == "" {
		removeUploads(in.ThumbnailPath)
		return nil, &ValidationError{Message: "Video is required!"}
	}
	if in.ThumbnailPath == "" {
		removeUploads(in.VideoPath)
		return nil, &ValidationError{Message: "Thumbnail is required!"}
	}

	var videoFile, thumbnail *storage.Object
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obj, err := s.store.Upload(gctx, storage.KindVideo, in.VideoPath)
		videoFile = obj
		return err
	})
	g.Go(func() error {
		obj, err := s.store.Upload(gctx, storage.KindImage, in.ThumbnailPath)
		thumbnail = obj
		return err
	})
	if err := g.Wait(); err != nil {
		if videoFile != nil {
			s.assets.remove(ctx, storage.KindVideo, videoFile.PublicID, "publish failed")
		}
		if thumbnail != nil {
			s.assets.remove(ctx, storage.KindImage, thumbnail.PublicID, "publish failed")
		}
		return nil, processingError("upload video assets", err)
	}

	video := models.NewVideo(owner,
		strings.TrimSpace(in.Title),
		strings.TrimSpace(in.Description),
		videoFile.Asset(),
		thumbnail.Asset(),
		videoFile.Duration,
	)
	if err := s.videos.Create(ctx, video); err != nil {
		s.assets.remove(ctx, storage.KindVideo, videoFile.PublicID, "publish failed")
		s.assets.remove(ctx, storage.KindImage, thumbnail.PublicID, "publish failed")
		return nil, processingError("create video", err)
	}

	logger.Log.Info("Video published",
		zap.String("videoId", video.ID.String()),
		zap.String("ownerId", owner.String()),
	)
	s.events.emit(ctx, events.VideoPublished, owner, video.ID, map[string]any{"title": video.Title})

	v, err := s.videos.GetView(ctx, video.ID, owner)
	if err != nil {
		return nil, processingError("load published video", err)
	}
	return v, nil
}

func (s *videoService) Watch(ctx context.Context, id, viewer uuid.UUID) (*models.VideoView, error) {
	v, err := s.videos.GetView(ctx, id, viewer)
	if err != nil {
		return nil, lookupError(err, "Video does not exist!", "get video")
	}
	if !v.IsPublished && (v.Owner == nil || v.Owner.ID != viewer) {
		return nil, &NotFoundError{Message: "Video does not exist!"}
	}

	if err := s.videos.IncrementViews(ctx, id); err != nil {
		logger.Log.Warn("Failed to count view", zap.Error(err), zap.String("videoId", id.String()))
	} else {
		v.Views++
	}

	if viewer != view.Anonymous {
		if err := s.users.PushWatchHistory(ctx, viewer, id); err != nil {
			logger.Log.Warn("Failed to update watch history",
				zap.Error(err),
				zap.String("userId", viewer.String()),
				zap.String("videoId", id.String()),
			)
		}
	}

	return v, nil
}

// owned loads a video and checks that actor owns it.
func (s *videoService) owned(ctx context.Context, actor, id uuid.UUID) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Video does not exist!", "get video")
	}
	if video.OwnerID != actor {
		return nil, notOwner()
	}
	return video, nil
}

func (s *videoService) Update(ctx context.Context, actor, id uuid.UUID, in UpdateVideoInput) (*models.VideoView, error) {
	if blank(in.Title) || blank(in.Description) {
		removeUploads(in.ThumbnailPath)
		return nil, &ValidationError{Message: "All fields are required!"}
	}

	video, err := s.owned(ctx, actor, id)
	if err != nil {
		removeUploads(in.ThumbnailPath)
		return nil, err
	}

	old := video.Thumbnail
	video.Title = strings.TrimSpace(in.Title)
	video.Description = strings.TrimSpace(in.Description)

	if in.ThumbnailPath != "" {
		obj, err := s.store.Upload(ctx, storage.KindImage, in.ThumbnailPath)
		if err != nil {
			return nil, processingError("upload thumbnail", err)
		}
		video.Thumbnail = obj.Asset()
	}

	if err := s.videos.Update(ctx, video); err != nil {
		if video.Thumbnail != old {
			s.assets.remove(ctx, storage.KindImage, video.Thumbnail.PublicID, "update failed")
		}
		return nil, lookupError(err, "Video does not exist!", "update video")
	}

	if video.Thumbnail != old {
		s.assets.remove(ctx, storage.KindImage, old.PublicID, "thumbnail replaced")
	}

	logger.Log.Info("Video updated", zap.String("videoId", id.String()))

	v, err := s.videos.GetView(ctx, id, actor)
	if err != nil {
		return nil, lookupError(err, "Video does not exist!", "load updated video")
	}
	return v, nil
}

func (s *videoService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}

	res, err := s.videos.DeleteCascade(ctx, id)
	if err != nil {
		return lookupError(err, "Video does not exist!", "delete video")
	}

	// Assets go only once the rows are committed.
	s.assets.remove(ctx, storage.KindVideo, res.Video.VideoFile.PublicID, "video deleted")
	s.assets.remove(ctx, storage.KindImage, res.Video.Thumbnail.PublicID, "video deleted")

	logger.Log.Info("Video deleted",
		zap.String("videoId", id.String()),
		zap.Int64("comments", res.CommentsDeleted),
		zap.Int64("likes", res.LikesDeleted),
		zap.Int64("playlists", res.PlaylistsUpdated),
		zap.Int64("histories", res.HistoriesUpdated),
	)
	s.events.emit(ctx, events.VideoDeleted, actor, id, map[string]any{
		"commentsDeleted":  res.CommentsDeleted,
		"likesDeleted":     res.LikesDeleted,
		"playlistsUpdated": res.PlaylistsUpdated,
	})
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, actor, id uuid.UUID) (bool, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return false, err
	}

	published, err := s.videos.TogglePublished(ctx, id)
	if err != nil {
		return false, lookupError(err, "Video does not exist!", "toggle publish")
	}

	logger.Log.Info("Video publish state changed",
		zap.String("videoId", id.String()),
		zap.Bool("isPublished", published),
	)
	return published, nil
}
