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

// CommentRepository defines operations for managing video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetView(ctx context.Context, id, viewer uuid.UUID) (*models.CommentView, error)

	// ListByVideo returns a page of a video's comments, newest first.
	ListByVideo(ctx context.Context, videoID uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.CommentView], error)

	UpdateContent(ctx context.Context, id uuid.UUID, content string) error

	// Delete removes the comment and the likes targeting it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

type commentRow struct {
	ID        uuid.UUID `db:"id"`
	VideoID   uuid.UUID `db:"video_id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	ownerColumns
	Likes   int64 `db:"likes"`
	IsLiked bool  `db:"is_liked"`
}

func (r commentRow) view() models.CommentView {
	return models.CommentView{
		ID:        r.ID,
		VideoID:   r.VideoID,
		Content:   r.Content,
		Owner:     r.profile(),
		Likes:     r.Likes,
		IsLiked:   r.IsLiked,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func commentQuery(viewer uuid.UUID) *view.Query {
	return view.From("comments", "c", "id", "video_id", "owner_id", "content", "created_at", "updated_at").With(
		view.OwnerProfile("c.owner_id"),
		view.LikeCount(models.TargetComment),
		view.ViewerLikeState(models.TargetComment, viewer),
	)
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments (video_id, owner_id, content) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		comment.VideoID, comment.OwnerID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return db.WrapError(err, "create comment")
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, video_id, owner_id, content, created_at, updated_at FROM comments WHERE id = $1`, id)
	if err != nil {
		return nil, db.WrapError(err, "get comment by id")
	}
	comment, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Comment])
	if err != nil {
		return nil, db.WrapError(err, "get comment by id")
	}
	return comment, nil
}

func (r *commentRepository) GetView(ctx context.Context, id, viewer uuid.UUID) (*models.CommentView, error) {
	row, err := view.One(ctx, r.pool, commentQuery(viewer).With(view.ByID(id)),
		pgx.RowToStructByNameLax[commentRow], "get comment view")
	if err != nil {
		return nil, err
	}
	v := row.view()
	return &v, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.CommentView], error) {
	q := commentQuery(viewer).With(
		view.Filter("c.video_id = %s", videoID),
		view.Order("c.created_at DESC", "c.id DESC"),
	)

	rows, err := view.Paginate(ctx, r.pool, q, page, pgx.RowToStructByNameLax[commentRow], view.CommentLabels)
	if err != nil {
		return nil, err
	}
	return view.MapPage(rows, commentRow.view), nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE comments SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return db.WrapError(err, "update comment")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update comment: %w", db.ErrNotFound)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteWithLikes(ctx, r.pool, "comments", models.TargetComment, id)
}
