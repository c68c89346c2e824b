package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
)

// UserRepository defines operations for managing users and their channel views.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByUsername retrieves a user by username (case-insensitive).
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Exists reports whether a user with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ChannelProfile returns the user's channel view as seen by viewer.
	ChannelProfile(ctx context.Context, username string, viewer uuid.UUID) (*models.ChannelProfile, error)

	// PushWatchHistory moves videoID to the front of the user's watch history.
	PushWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error

	// WatchHistory returns the user's watch history, most recent first.
	WatchHistory(ctx context.Context, userID uuid.UUID) ([]models.HistoryEntry, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, username, email, full_name, avatar, cover_image, watch_history, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, full_name, avatar, cover_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, watch_history, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.FullName,
		user.Avatar,
		user.CoverImage,
	).Scan(
		&user.ID,
		&user.WatchHistory,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create user")
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id, "get user by id")
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.getOne(ctx, query, strings.ToLower(username), "get user by username")
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any, operation string) (*models.User, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, db.WrapError(err, operation)
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.User])
	if err != nil {
		return nil, db.WrapError(err, operation)
	}
	return user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, db.WrapError(err, "check user exists")
	}
	return exists, nil
}

type channelRow struct {
	ID                        uuid.UUID `db:"id"`
	Username                  string    `db:"username"`
	Email                     string    `db:"email"`
	FullName                  string    `db:"full_name"`
	Avatar                    string    `db:"avatar"`
	CoverImage                string    `db:"cover_image"`
	CreatedAt                 time.Time `db:"created_at"`
	SubscribersCount          int64     `db:"subscribers_count"`
	IsSubscribed              bool      `db:"is_subscribed"`
	ChannelsSubscribedToCount int64     `db:"channels_subscribed_to_count"`
}

func (r *userRepository) ChannelProfile(ctx context.Context, username string, viewer uuid.UUID) (*models.ChannelProfile, error) {
	q := view.From("users", "u", "id", "username", "email", "full_name", "avatar", "cover_image", "created_at").With(
		view.SubscriptionStats("u.id", viewer),
		view.SubscribedToCount("u.id"),
		view.Filter("u.username = %s", strings.ToLower(strings.TrimSpace(username))),
	)

	row, err := view.One(ctx, r.pool, q, pgx.RowToStructByNameLax[channelRow], "get channel profile")
	if err != nil {
		return nil, err
	}

	return &models.ChannelProfile{
		ID:                        row.ID,
		Username:                  row.Username,
		Email:                     row.Email,
		FullName:                  row.FullName,
		Avatar:                    row.Avatar,
		CoverImage:                row.CoverImage,
		SubscribersCount:          row.SubscribersCount,
		ChannelsSubscribedToCount: row.ChannelsSubscribedToCount,
		IsSubscribed:              row.IsSubscribed,
		CreatedAt:                 row.CreatedAt,
	}, nil
}

func (r *userRepository) PushWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	query := `
		UPDATE users
		SET watch_history = array_prepend($2::uuid, array_remove(watch_history, $2::uuid))
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, userID, videoID)
	if err != nil {
		return db.WrapError(err, "push watch history")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("push watch history: %w", db.ErrNotFound)
	}

	return nil
}

func (r *userRepository) WatchHistory(ctx context.Context, userID uuid.UUID) ([]models.HistoryEntry, error) {
	q := videoQuery()
	q.Join(fmt.Sprintf(`JOIN (
		SELECT h.video_id, h.position
		FROM users hu, unnest(hu.watch_history) WITH ORDINALITY AS h(video_id, position)
		WHERE hu.id = %s
	) wh ON wh.video_id = v.id`, q.Arg(userID)))
	q.Select("wh.position AS position")
	q.With(
		view.OwnerProfile("v.owner_id"),
		visibleTo(userID),
		view.Order("wh.position"),
	)

	rows, err := view.All(ctx, r.pool, q, pgx.RowToStructByNameLax[videoRow], "get watch history")
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, models.HistoryEntry{Position: i, Video: row.view()})
	}
	return entries, nil
}
