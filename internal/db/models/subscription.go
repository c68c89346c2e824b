package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription records that Subscriber follows Channel. Both are users.
type Subscription struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SubscriberID uuid.UUID `db:"subscriber_id" json:"subscriberId"`
	ChannelID    uuid.UUID `db:"channel_id" json:"channelId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
