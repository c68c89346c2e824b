package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user's comment on a video.
type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	VideoID   uuid.UUID `db:"video_id" json:"videoId"`
	OwnerID   uuid.UUID `db:"owner_id" json:"ownerId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
