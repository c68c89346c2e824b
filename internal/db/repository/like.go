package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
)

// LikeRepository defines operations on likes. A like row's existence is the
// like state; there is no flag to flip.
type LikeRepository interface {
	// Toggle removes the user's like on target if present, otherwise adds it.
	// It returns the resulting state.
	Toggle(ctx context.Context, target models.LikeTarget, userID uuid.UUID) (liked bool, err error)

	// TargetExists reports whether the liked entity exists.
	TargetExists(ctx context.Context, target models.LikeTarget) (bool, error)

	// Count returns the number of likes on target.
	Count(ctx context.Context, target models.LikeTarget) (int64, error)

	// LikedVideos lists videos liked by userID, most recently liked first.
	LikedVideos(ctx context.Context, userID uuid.UUID) ([]models.LikedVideoView, error)
}

type likeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &likeRepository{pool: pool}
}

var likeTargetTables = map[models.TargetKind]string{
	models.TargetVideo:   "videos",
	models.TargetComment: "comments",
	models.TargetTweet:   "tweets",
}

func (r *likeRepository) Toggle(ctx context.Context, target models.LikeTarget, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM likes WHERE target_kind = $1 AND target_id = $2 AND liked_by = $3`,
		string(target.Kind), target.ID, userID,
	)
	if err != nil {
		return false, db.WrapError(err, "toggle like")
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	// A concurrent toggle may have inserted first; the unique constraint keeps
	// a single row and the state is liked either way.
	_, err = r.pool.Exec(ctx, `
		INSERT INTO likes (target_kind, target_id, liked_by)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT likes_target_liked_by_key DO NOTHING
	`, string(target.Kind), target.ID, userID)
	if err != nil {
		return false, db.WrapError(err, "toggle like")
	}
	return true, nil
}

func (r *likeRepository) TargetExists(ctx context.Context, target models.LikeTarget) (bool, error) {
	table, ok := likeTargetTables[target.Kind]
	if !ok {
		return false, fmt.Errorf("unknown like target kind %q", target.Kind)
	}

	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, target.ID).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "check like target")
	}
	return exists, nil
}

func (r *likeRepository) Count(ctx context.Context, target models.LikeTarget) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE target_kind = $1 AND target_id = $2`,
		string(target.Kind), target.ID,
	).Scan(&n)
	if err != nil {
		return 0, db.WrapError(err, "count likes")
	}
	return n, nil
}

func (r *likeRepository) LikedVideos(ctx context.Context, userID uuid.UUID) ([]models.LikedVideoView, error) {
	q := videoQuery()
	q.Join(fmt.Sprintf(
		"JOIN likes lk ON lk.target_kind = 'video' AND lk.target_id = v.id AND lk.liked_by = %s", q.Arg(userID)))
	q.Select("lk.id AS like_id", "lk.created_at AS liked_at")
	q.With(videoSummary(userID)...).With(
		visibleTo(userID),
		view.Order("lk.created_at DESC", "lk.id DESC"),
	)

	rows, err := view.All(ctx, r.pool, q, pgx.RowToStructByNameLax[videoRow], "list liked videos")
	if err != nil {
		return nil, err
	}

	out := make([]models.LikedVideoView, 0, len(rows))
	for _, row := range rows {
		entry := models.LikedVideoView{Video: row.view()}
		if row.LikeID != nil {
			entry.ID = *row.LikeID
		}
		if row.LikedAt != nil {
			entry.LikedAt = *row.LikedAt
		}
		out = append(out, entry)
	}
	return out, nil
}
