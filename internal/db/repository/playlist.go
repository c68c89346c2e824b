package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
)

// PlaylistRepository defines operations for managing playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddVideo appends videoID unless the playlist already holds it.
	// added is false when it was already present.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (added bool, err error)

	// RemoveVideo removes videoID. removed is false when it was not present.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (removed bool, err error)

	// ListByOwner lists a user's playlists with compact video entries.
	ListByOwner(ctx context.Context, ownerID, viewer uuid.UUID) ([]models.PlaylistView[models.VideoRef], error)

	// GetView returns a playlist with full video views in playlist order.
	GetView(ctx context.Context, id, viewer uuid.UUID) (*models.PlaylistView[models.VideoView], error)
}

type playlistRepository struct {
	pool *pgxpool.Pool
}

// NewPlaylistRepository creates a new PlaylistRepository.
func NewPlaylistRepository(pool *pgxpool.Pool) PlaylistRepository {
	return &playlistRepository{pool: pool}
}

const playlistColumns = `id, owner_id, name, description, video_ids, created_at, updated_at`

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if playlist.VideoIDs == nil {
		playlist.VideoIDs = []uuid.UUID{}
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO playlists (owner_id, name, description, video_ids)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, playlist.OwnerID, playlist.Name, playlist.Description, playlist.VideoIDs,
	).Scan(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		return db.WrapError(err, "create playlist")
	}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id)
	if err != nil {
		return nil, db.WrapError(err, "get playlist by id")
	}
	playlist, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Playlist])
	if err != nil {
		return nil, db.WrapError(err, "get playlist by id")
	}
	return playlist, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE playlists SET name = $1, description = $2 WHERE id = $3 RETURNING updated_at`,
		playlist.Name, playlist.Description, playlist.ID,
	).Scan(&playlist.UpdatedAt)
	if err != nil {
		return db.WrapError(err, "update playlist")
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete playlist")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete playlist: %w", db.ErrNotFound)
	}
	return nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	// The membership test and the append happen in one statement, so two
	// concurrent adds of the same video cannot both succeed.
	tag, err := r.pool.Exec(ctx, `
		UPDATE playlists
		SET video_ids = array_append(video_ids, $2::uuid)
		WHERE id = $1 AND NOT ($2::uuid = ANY(video_ids))
	`, playlistID, videoID)
	if err != nil {
		return false, db.WrapError(err, "add video to playlist")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE playlists
		SET video_ids = array_remove(video_ids, $2::uuid)
		WHERE id = $1 AND $2::uuid = ANY(video_ids)
	`, playlistID, videoID)
	if err != nil {
		return false, db.WrapError(err, "remove video from playlist")
	}
	return tag.RowsAffected() > 0, nil
}

type playlistRow struct {
	ID          uuid.UUID `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	ownerColumns
	Videos     []models.VideoRef `db:"videos"`
	TotalViews int64             `db:"total_views"`
}

func playlistQuery() *view.Query {
	return view.From("playlists", "p", "id", "owner_id", "name", "description", "created_at", "updated_at").
		With(view.OwnerProfile("p.owner_id"))
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID, viewer uuid.UUID) ([]models.PlaylistView[models.VideoRef], error) {
	q := playlistQuery()
	visible := fmt.Sprintf("(pv.is_published OR pv.owner_id = %s)", q.Arg(viewer))
	q.Select(
		fmt.Sprintf(`COALESCE((
			SELECT json_agg(json_build_object(
				'id', pv.id,
				'videoFile', json_build_object('publicId', pv.video_file_public_id, 'url', pv.video_file_url),
				'thumbnail', json_build_object('publicId', pv.thumbnail_public_id, 'url', pv.thumbnail_url)
			) ORDER BY x.ord)
			FROM unnest(p.video_ids) WITH ORDINALITY AS x(video_id, ord)
			JOIN videos pv ON pv.id = x.video_id AND %s
		), '[]'::json) AS videos`, visible),
		fmt.Sprintf(`(
			SELECT COALESCE(SUM(pv.views), 0)::bigint
			FROM videos pv WHERE pv.id = ANY(p.video_ids) AND %s
		) AS total_views`, visible),
	)
	q.With(
		view.Filter("p.owner_id = %s", ownerID),
		view.Order("p.created_at DESC", "p.id DESC"),
	)

	rows, err := view.All(ctx, r.pool, q, pgx.RowToStructByNameLax[playlistRow], "list playlists by owner")
	if err != nil {
		return nil, err
	}

	out := make([]models.PlaylistView[models.VideoRef], 0, len(rows))
	for _, row := range rows {
		videos := row.Videos
		if videos == nil {
			videos = []models.VideoRef{}
		}
		out = append(out, models.PlaylistView[models.VideoRef]{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Owner:       row.profile(),
			TotalVideos: len(videos),
			TotalViews:  row.TotalViews,
			Videos:      videos,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *playlistRepository) GetView(ctx context.Context, id, viewer uuid.UUID) (*models.PlaylistView[models.VideoView], error) {
	row, err := view.One(ctx, r.pool, playlistQuery().With(view.ByID(id)),
		pgx.RowToStructByNameLax[playlistRow], "get playlist view")
	if err != nil {
		return nil, err
	}

	q := videoQuery()
	q.Join(fmt.Sprintf(
		"JOIN unnest((SELECT video_ids FROM playlists WHERE id = %s)) WITH ORDINALITY AS pl(video_id, ord) ON pl.video_id = v.id",
		q.Arg(id)))
	q.With(videoSummary(viewer)...).With(
		visibleTo(viewer),
		view.Order("pl.ord"),
	)

	videoRows, err := view.All(ctx, r.pool, q, pgx.RowToStructByNameLax[videoRow], "get playlist videos")
	if err != nil {
		return nil, err
	}

	videos := videoViews(videoRows)
	var views int64
	for _, v := range videos {
		views += v.Views
	}

	return &models.PlaylistView[models.VideoView]{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Owner:       row.profile(),
		TotalVideos: len(videos),
		TotalViews:  views,
		Videos:      videos,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
