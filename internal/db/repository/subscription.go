package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
)

// SubscriptionRepository defines operations on channel subscriptions.
type SubscriptionRepository interface {
	// Toggle subscribes subscriberID to channelID, or unsubscribes when
	// already subscribed. It returns the resulting state. A self subscription
	// fails with db.ErrCheckViolation.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (subscribed bool, err error)

	// IsSubscribed reports whether subscriberID follows channelID.
	IsSubscribed(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)

	// ListSubscribers lists the users subscribed to channelID.
	ListSubscribers(ctx context.Context, channelID, viewer uuid.UUID) ([]models.SubscriptionView, error)

	// ListSubscribedTo lists the channels subscriberID follows.
	ListSubscribedTo(ctx context.Context, subscriberID, viewer uuid.UUID) ([]models.SubscriptionView, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID,
	)
	if err != nil {
		return false, db.WrapError(err, "toggle subscription")
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT subscriptions_subscriber_channel_key DO NOTHING
	`, subscriberID, channelID)
	if err != nil {
		return false, db.WrapError(err, "toggle subscription")
	}
	return true, nil
}

func (r *subscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2)`,
		subscriberID, channelID,
	).Scan(&ok)
	if err != nil {
		return false, db.WrapError(err, "check subscription")
	}
	return ok, nil
}

type subscriptionRow struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	ownerColumns
	SubscribersCount int64 `db:"subscribers_count"`
	IsSubscribed     bool  `db:"is_subscribed"`
}

func (r subscriptionRow) view() models.SubscriptionView {
	user := r.profile()
	if user != nil {
		count, subscribed := r.SubscribersCount, r.IsSubscribed
		user.SubscribersCount = &count
		user.IsSubscribed = &subscribed
	}
	return models.SubscriptionView{ID: r.ID, User: user, SubscribedAt: r.CreatedAt}
}

// listRelated lists subscriptions filtered on filterCol, projecting the user
// referenced by otherCol with that user's subscription stats.
func (r *subscriptionRepository) listRelated(ctx context.Context, filterCol, otherCol string, id, viewer uuid.UUID, operation string) ([]models.SubscriptionView, error) {
	q := view.From("subscriptions", "s", "id", "created_at").With(
		view.OwnerProfile("s."+otherCol),
		view.SubscriptionStats("s."+otherCol, viewer),
		view.Filter("s."+filterCol+" = %s", id),
		view.Order("s.created_at DESC", "s.id DESC"),
	)

	rows, err := view.All(ctx, r.pool, q, pgx.RowToStructByNameLax[subscriptionRow], operation)
	if err != nil {
		return nil, err
	}

	out := make([]models.SubscriptionView, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.view())
	}
	return out, nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID, viewer uuid.UUID) ([]models.SubscriptionView, error) {
	return r.listRelated(ctx, "channel_id", "subscriber_id", channelID, viewer, "list subscribers")
}

func (r *subscriptionRepository) ListSubscribedTo(ctx context.Context, subscriberID, viewer uuid.UUID) ([]models.SubscriptionView, error) {
	return r.listRelated(ctx, "subscriber_id", "channel_id", subscriberID, viewer, "list subscribed channels")
}
