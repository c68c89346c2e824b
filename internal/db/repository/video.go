package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
)

// VideoRepository defines operations for managing videos.
type VideoRepository interface {
	// Create inserts a new video.
	Create(ctx context.Context, video *models.Video) error

	// GetByID retrieves a single video by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)

	// GetView returns the composed detail view of a video as seen by viewer.
	GetView(ctx context.Context, id, viewer uuid.UUID) (*models.VideoView, error)

	// List returns one page of videos matching the filter.
	List(ctx context.Context, filter VideoFilter, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.VideoView], error)

	// Update saves title, description and thumbnail.
	Update(ctx context.Context, video *models.Video) error

	// TogglePublished flips the publish flag and returns the new value.
	TogglePublished(ctx context.Context, id uuid.UUID) (bool, error)

	// IncrementViews adds one view.
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// DeleteCascade removes the video and every record referencing it in one
	// transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) (*CascadeResult, error)
}

// VideoFilter narrows a video listing.
type VideoFilter struct {
	// Search matches title or description, case-insensitive.
	Search  string
	OwnerID *uuid.UUID
	// IncludeUnpublished lists unpublished videos too; used for the owner's dashboard.
	IncludeUnpublished bool
	// SortBy is a key of models.VideoSortField; unknown keys sort by createdAt.
	SortBy string
	// SortAsc sorts ascending; the default is descending.
	SortAsc bool
}

// CascadeResult reports what a video deletion removed.
type CascadeResult struct {
	Video            *models.Video
	CommentsDeleted  int64
	LikesDeleted     int64
	PlaylistsUpdated int64
	HistoriesUpdated int64
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (
			owner_id, video_file_public_id, video_file_url, thumbnail_public_id,
			thumbnail_url, title, description, duration, is_published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, views, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.OwnerID,
		video.VideoFile.PublicID,
		video.VideoFile.URL,
		video.Thumbnail.PublicID,
		video.Thumbnail.URL,
		video.Title,
		video.Description,
		video.Duration,
		video.IsPublished,
	).Scan(
		&video.ID,
		&video.Views,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create video")
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	q := videoQuery().With(view.ByID(id))

	row, err := view.One(ctx, r.pool, q, pgx.RowToStructByNameLax[videoRow], "get video by id")
	if err != nil {
		return nil, err
	}
	return row.entity(), nil
}

func (r *videoRepository) GetView(ctx context.Context, id, viewer uuid.UUID) (*models.VideoView, error) {
	q := videoQuery().With(videoSummary(viewer)...).With(
		view.CommentCount(),
		view.SubscriptionStats("v.owner_id", viewer),
		view.ByID(id),
	)

	row, err := view.One(ctx, r.pool, q, pgx.RowToStructByNameLax[videoRow], "get video view")
	if err != nil {
		return nil, err
	}
	v := row.view()
	return &v, nil
}

func (r *videoRepository) List(ctx context.Context, filter VideoFilter, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.VideoView], error) {
	q := videoQuery().With(videoSummary(viewer)...).With(view.CommentCount())

	if !filter.IncludeUnpublished {
		q.Where("v.is_published")
	}
	if filter.OwnerID != nil {
		q.With(view.Filter("v.owner_id = %s", *filter.OwnerID))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		q.With(view.Filter("(v.title ILIKE %[1]s OR v.description ILIKE %[1]s)", pattern))
	}

	col, ok := models.VideoSortField[filter.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if filter.SortAsc {
		dir = "ASC"
	}
	q.OrderBy(fmt.Sprintf("v.%s %s", col, dir), "v.id "+dir)

	rows, err := view.Paginate(ctx, r.pool, q, page, pgx.RowToStructByNameLax[videoRow], view.VideoLabels)
	if err != nil {
		return nil, err
	}

	return view.MapPage(rows, videoRow.view), nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos
		SET title = $1,
		    description = $2,
		    thumbnail_public_id = $3,
		    thumbnail_url = $4
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.Title,
		video.Description,
		video.Thumbnail.PublicID,
		video.Thumbnail.URL,
		video.ID,
	).Scan(&video.UpdatedAt)
	if err != nil {
		return db.WrapError(err, "update video")
	}

	return nil
}

func (r *videoRepository) TogglePublished(ctx context.Context, id uuid.UUID) (bool, error) {
	var published bool
	err := r.pool.QueryRow(ctx,
		`UPDATE videos SET is_published = NOT is_published WHERE id = $1 RETURNING is_published`,
		id,
	).Scan(&published)
	if err != nil {
		return false, db.WrapError(err, "toggle video published")
	}
	return published, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "increment video views")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment video views: %w", db.ErrNotFound)
	}
	return nil
}

func (r *videoRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (*CascadeResult, error) {
	result := &CascadeResult{}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `DELETE FROM videos WHERE id = $1 RETURNING `+strings.Join(videoColumns, ", "), id)
		if err != nil {
			return err
		}
		deleted, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[videoRow])
		if err != nil {
			return err
		}
		result.Video = deleted.entity()

		rows, err = tx.Query(ctx, `DELETE FROM comments WHERE video_id = $1 RETURNING id`, id)
		if err != nil {
			return err
		}
		commentIDs, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
		if err != nil {
			return err
		}
		result.CommentsDeleted = int64(len(commentIDs))

		tag, err := tx.Exec(ctx, `
			DELETE FROM likes
			WHERE (target_kind = 'video' AND target_id = $1)
			   OR (target_kind = 'comment' AND target_id = ANY($2::uuid[]))
		`, id, commentIDs)
		if err != nil {
			return err
		}
		result.LikesDeleted = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `
			UPDATE playlists SET video_ids = array_remove(video_ids, $1::uuid)
			WHERE $1::uuid = ANY(video_ids)
		`, id)
		if err != nil {
			return err
		}
		result.PlaylistsUpdated = tag.RowsAffected()

		tag, err = tx.Exec(ctx, `
			UPDATE users SET watch_history = array_remove(watch_history, $1::uuid)
			WHERE $1::uuid = ANY(watch_history)
		`, id)
		if err != nil {
			return err
		}
		result.HistoriesUpdated = tag.RowsAffected()

		return nil
	})
	if err != nil {
		return nil, db.WrapError(err, "delete video cascade")
	}

	return result, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
