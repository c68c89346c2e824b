package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is an ordered, duplicate free list of videos.
type Playlist struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	OwnerID     uuid.UUID   `db:"owner_id" json:"ownerId"`
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	VideoIDs    []uuid.UUID `db:"video_ids" json:"videos"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}
