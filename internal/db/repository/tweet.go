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

// TweetRepository defines operations for managing tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error)
	GetView(ctx context.Context, id, viewer uuid.UUID) (*models.TweetView, error)

	// List returns tweets newest first; ownerID nil lists every tweet.
	List(ctx context.Context, ownerID *uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.TweetView], error)

	UpdateContent(ctx context.Context, id uuid.UUID, content string) error

	// Delete removes the tweet and the likes targeting it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type tweetRepository struct {
	pool *pgxpool.Pool
}

// NewTweetRepository creates a new TweetRepository.
func NewTweetRepository(pool *pgxpool.Pool) TweetRepository {
	return &tweetRepository{pool: pool}
}

type tweetRow struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	ownerColumns
	Likes   int64 `db:"likes"`
	IsLiked bool  `db:"is_liked"`
}

func (r tweetRow) view() models.TweetView {
	return models.TweetView{
		ID:        r.ID,
		Content:   r.Content,
		Owner:     r.profile(),
		Likes:     r.Likes,
		IsLiked:   r.IsLiked,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func tweetQuery(viewer uuid.UUID) *view.Query {
	return view.From("tweets", "t", "id", "owner_id", "content", "created_at", "updated_at").With(
		view.OwnerProfile("t.owner_id"),
		view.LikeCount(models.TargetTweet),
		view.ViewerLikeState(models.TargetTweet, viewer),
	)
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tweets (owner_id, content) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		tweet.OwnerID, tweet.Content,
	).Scan(&tweet.ID, &tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return db.WrapError(err, "create tweet")
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, content, created_at, updated_at FROM tweets WHERE id = $1`, id)
	if err != nil {
		return nil, db.WrapError(err, "get tweet by id")
	}
	tweet, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Tweet])
	if err != nil {
		return nil, db.WrapError(err, "get tweet by id")
	}
	return tweet, nil
}

func (r *tweetRepository) GetView(ctx context.Context, id, viewer uuid.UUID) (*models.TweetView, error) {
	row, err := view.One(ctx, r.pool, tweetQuery(viewer).With(view.ByID(id)),
		pgx.RowToStructByNameLax[tweetRow], "get tweet view")
	if err != nil {
		return nil, err
	}
	v := row.view()
	return &v, nil
}

func (r *tweetRepository) List(ctx context.Context, ownerID *uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.TweetView], error) {
	q := tweetQuery(viewer)
	if ownerID != nil {
		q.With(view.Filter("t.owner_id = %s", *ownerID))
	}
	q.OrderBy("t.created_at DESC", "t.id DESC")

	rows, err := view.Paginate(ctx, r.pool, q, page, pgx.RowToStructByNameLax[tweetRow], view.TweetLabels)
	if err != nil {
		return nil, err
	}
	return view.MapPage(rows, tweetRow.view), nil
}

func (r *tweetRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tweets SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return db.WrapError(err, "update tweet")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update tweet: %w", db.ErrNotFound)
	}
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteWithLikes(ctx, r.pool, "tweets", models.TargetTweet, id)
}

// deleteWithLikes removes a likeable row and its likes atomically.
func deleteWithLikes(ctx context.Context, pool *pgxpool.Pool, table string, kind models.TargetKind, id uuid.UUID) error {
	operation := "delete " + string(kind)

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		_, err = tx.Exec(ctx, `DELETE FROM likes WHERE target_kind = $1 AND target_id = $2`, string(kind), id)
		return err
	})
	if err != nil {
		return db.WrapError(err, operation)
	}
	return nil
}
