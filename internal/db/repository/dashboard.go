package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
)

// DashboardRepository aggregates a channel's numbers.
type DashboardRepository interface {
	// Stats counts views, videos and likes over the published videos of
	// channelID, plus its subscribers.
	Stats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error)
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) Stats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(views), 0)::bigint FROM videos WHERE owner_id = $1 AND is_published),
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1 AND is_published),
			(SELECT COUNT(*) FROM likes l
			   JOIN videos v ON l.target_kind = 'video' AND l.target_id = v.id
			  WHERE v.owner_id = $1 AND v.is_published),
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1)
	`

	var stats models.ChannelStats
	err := r.pool.QueryRow(ctx, query, channelID).Scan(
		&stats.TotalViews,
		&stats.TotalVideos,
		&stats.TotalLikes,
		&stats.TotalSubscribers,
	)
	if err != nil {
		return nil, db.WrapError(err, "get channel stats")
	}
	return &stats, nil
}
