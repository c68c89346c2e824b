package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// PlaylistInput carries a playlist's editable fields.
type PlaylistInput struct {
	Name        string
	Description string
}

// PlaylistService manages playlists. Only the owner may change a playlist.
type PlaylistService interface {
	Create(ctx context.Context, owner uuid.UUID, in PlaylistInput) (*models.Playlist, error)
	ListByUser(ctx context.Context, userID, viewer uuid.UUID) ([]models.PlaylistView[models.VideoRef], error)
	Get(ctx context.Context, id, viewer uuid.UUID) (*models.PlaylistView[models.VideoView], error)
	Update(ctx context.Context, actor, id uuid.UUID, in PlaylistInput) (*models.Playlist, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
	AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*models.PlaylistView[models.VideoView], error)
	RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*models.PlaylistView[models.VideoView], error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	users     repository.UserRepository
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository, users repository.UserRepository) PlaylistService {
	return &playlistService{playlists: playlists, videos: videos, users: users}
}

func (in PlaylistInput) validate() error {
	if blank(in.Name) || blank(in.Description) {
		return &ValidationError{Message: "All fields are required!"}
	}
	return nil
}

func (s *playlistService) Create(ctx context.Context, owner uuid.UUID, in PlaylistInput) (*models.Playlist, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	playlist := &models.Playlist{
		OwnerID:     owner,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, processingError("create playlist", err)
	}

	logger.Log.Info("Playlist created", zap.String("playlistId", playlist.ID.String()))
	return playlist, nil
}

func (s *playlistService) ListByUser(ctx context.Context, userID, viewer uuid.UUID) ([]models.PlaylistView[models.VideoRef], error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, processingError("check user", err)
	}
	if !exists {
		return nil, &NotFoundError{Message: "User does not exist!"}
	}

	playlists, err := s.playlists.ListByOwner(ctx, userID, viewer)
	if err != nil {
		return nil, processingError("list playlists", err)
	}
	return playlists, nil
}

func (s *playlistService) Get(ctx context.Context, id, viewer uuid.UUID) (*models.PlaylistView[models.VideoView], error) {
	p, err := s.playlists.GetView(ctx, id, viewer)
	if err != nil {
		return nil, lookupError(err, "Playlist does not exist!", "get playlist")
	}
	return p, nil
}

func (s *playlistService) owned(ctx context.Context, actor, id uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Playlist does not exist!", "get playlist")
	}
	if playlist.OwnerID != actor {
		return nil, notOwner()
	}
	return playlist, nil
}

func (s *playlistService) Update(ctx context.Context, actor, id uuid.UUID, in PlaylistInput) (*models.Playlist, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	playlist, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	playlist.Name = strings.TrimSpace(in.Name)
	playlist.Description = strings.TrimSpace(in.Description)
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return nil, lookupError(err, "Playlist does not exist!", "update playlist")
	}
	return playlist, nil
}

func (s *playlistService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.playlists.Delete(ctx, id); err != nil {
		return lookupError(err, "Playlist does not exist!", "delete playlist")
	}
	logger.Log.Info("Playlist deleted", zap.String("playlistId", id.String()))
	return nil
}

func (s *playlistService) AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*models.PlaylistView[models.VideoView], error) {
	if _, err := s.owned(ctx, actor, playlistID); err != nil {
		return nil, err
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, lookupError(err, "Video does not exist!", "get video")
	}
	if !video.IsPublished && video.OwnerID != actor {
		return nil, &NotFoundError{Message: "Video does not exist!"}
	}

	added, err := s.playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, processingError("add video to playlist", err)
	}
	if !added {
		return nil, &ConflictError{Message: "Video already added to playlist!"}
	}

	logger.Log.Info("Video added to playlist",
		zap.String("playlistId", playlistID.String()),
		zap.String("videoId", videoID.String()),
	)
	return s.Get(ctx, playlistID, actor)
}

func (s *playlistService) RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*models.PlaylistView[models.VideoView], error) {
	if _, err := s.owned(ctx, actor, playlistID); err != nil {
		return nil, err
	}

	removed, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, processingError("remove video from playlist", err)
	}
	if !removed {
		return nil, &ValidationError{Message: "Video does not exist in the playlist!"}
	}

	logger.Log.Info("Video removed from playlist",
		zap.String("playlistId", playlistID.String()),
		zap.String("videoId", videoID.String()),
	)
	return s.Get(ctx, playlistID, actor)
}
