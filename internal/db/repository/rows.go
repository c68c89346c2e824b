package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
)

var videoColumns = []string{
	"id", "owner_id", "video_file_public_id", "video_file_url",
	"thumbnail_public_id", "thumbnail_url", "title", "description",
	"duration", "views", "is_published", "created_at", "updated_at",
}

// videoRow is the flat shape of every composed video query. Columns a
// particular query does not project are left at their zero value.
type videoRow struct {
	ID                uuid.UUID `db:"id"`
	OwnerID           uuid.UUID `db:"owner_id"`
	VideoFilePublicID string    `db:"video_file_public_id"`
	VideoFileURL      string    `db:"video_file_url"`
	ThumbnailPublicID string    `db:"thumbnail_public_id"`
	ThumbnailURL      string    `db:"thumbnail_url"`
	Title             string    `db:"title"`
	Description       string    `db:"description"`
	Duration          float64   `db:"duration"`
	Views             int64     `db:"views"`
	IsPublished       bool      `db:"is_published"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`

	ownerColumns

	Likes            int64  `db:"likes"`
	Comments         int64  `db:"comments"`
	IsLiked          bool   `db:"is_liked"`
	SubscribersCount *int64 `db:"subscribers_count"`
	IsSubscribed     *bool  `db:"is_subscribed"`

	Position int64      `db:"position"`
	LikeID   *uuid.UUID `db:"like_id"`
	LikedAt  *time.Time `db:"liked_at"`
}

// ownerColumns matches the projection of view.OwnerProfile.
type ownerColumns struct {
	OwnerRefID    *uuid.UUID `db:"owner_ref_id"`
	OwnerUsername *string    `db:"owner_username"`
	OwnerFullName *string    `db:"owner_full_name"`
	OwnerAvatar   *string    `db:"owner_avatar"`
}

func (o ownerColumns) profile() *models.OwnerProfile {
	return view.Owner(o.OwnerRefID, o.OwnerUsername, o.OwnerFullName, o.OwnerAvatar)
}

func (r videoRow) entity() *models.Video {
	return &models.Video{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		VideoFile:   models.Asset{PublicID: r.VideoFilePublicID, URL: r.VideoFileURL},
		Thumbnail:   models.Asset{PublicID: r.ThumbnailPublicID, URL: r.ThumbnailURL},
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Views:       r.Views,
		IsPublished: r.IsPublished,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r videoRow) view() models.VideoView {
	owner := r.profile()
	if owner != nil {
		owner.SubscribersCount = r.SubscribersCount
		owner.IsSubscribed = r.IsSubscribed
	}
	return models.VideoView{
		ID:          r.ID,
		VideoFile:   models.Asset{PublicID: r.VideoFilePublicID, URL: r.VideoFileURL},
		Thumbnail:   models.Asset{PublicID: r.ThumbnailPublicID, URL: r.ThumbnailURL},
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Views:       r.Views,
		IsPublished: r.IsPublished,
		Owner:       owner,
		Likes:       r.Likes,
		Comments:    r.Comments,
		IsLiked:     r.IsLiked,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func videoViews(rows []videoRow) []models.VideoView {
	out := make([]models.VideoView, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.view())
	}
	return out
}

// videoQuery starts a composed query over videos aliased as v.
func videoQuery() *view.Query {
	return view.From("videos", "v", videoColumns...)
}

// videoSummary adds the stages shared by every video listing.
func videoSummary(viewer uuid.UUID) []view.Stage {
	return []view.Stage{
		view.OwnerProfile("v.owner_id"),
		view.LikeCount(models.TargetVideo),
		view.ViewerLikeState(models.TargetVideo, viewer),
	}
}

// visibleTo restricts videos to published ones and the viewer's own.
func visibleTo(viewer uuid.UUID) view.Stage {
	return view.Filter("(v.is_published OR v.owner_id = %s)", viewer)
}
