package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
)

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	channel := uuid.New()
	page := view.PageRequest{Page: 1, Limit: 10}

	dashboard := &mockDashboardRepository{}
	videos := &mockVideoRepository{}
	svc := NewDashboardService(dashboard, videos)

	dashboard.On("Stats", ctx, channel).Return(&models.ChannelStats{TotalViews: 10, TotalVideos: 2}, nil)
	videos.On("List", ctx, repository.VideoFilter{OwnerID: &channel, IncludeUnpublished: true}, page, channel).
		Return(view.NewPage([]models.VideoView{{}, {}}, 2, page, view.VideoLabels), nil)

	stats, err := svc.Stats(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalViews)

	p, err := svc.Videos(ctx, channel, page)
	require.NoError(t, err)
	assert.Len(t, p.Items, 2)
	videos.AssertExpectations(t)
}
