package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
)

// DashboardService reports on the actor's own channel.
type DashboardService interface {
	Stats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error)

	// Videos lists the channel's videos, drafts included.
	Videos(ctx context.Context, channelID uuid.UUID, page view.PageRequest) (*view.Page[models.VideoView], error)
}

type dashboardService struct {
	dashboard repository.DashboardRepository
	videos    repository.VideoRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboard repository.DashboardRepository, videos repository.VideoRepository) DashboardService {
	return &dashboardService{dashboard: dashboard, videos: videos}
}

func (s *dashboardService) Stats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	stats, err := s.dashboard.Stats(ctx, channelID)
	if err != nil {
		return nil, processingError("channel stats", err)
	}
	return stats, nil
}

func (s *dashboardService) Videos(ctx context.Context, channelID uuid.UUID, page view.PageRequest) (*view.Page[models.VideoView], error) {
	filter := repository.VideoFilter{OwnerID: &channelID, IncludeUnpublished: true}
	videos, err := s.videos.List(ctx, filter, page, channelID)
	if err != nil {
		return nil, processingError("channel videos", err)
	}
	return videos, nil
}
