package models

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a file held by the remote asset host.
type Asset struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}

// Video is an uploaded video owned by a channel.
type Video struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	VideoFile   Asset     `json:"videoFile"`
	Thumbnail   Asset     `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewVideo creates a published Video from freshly uploaded assets.
func NewVideo(ownerID uuid.UUID, title, description string, videoFile, thumbnail Asset, duration float64) *Video {
	now := time.Now()
	return &Video{
		OwnerID:     ownerID,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Title:       title,
		Description: description,
		Duration:    duration,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// VideoSortField lists the columns a video listing may be ordered by.
var VideoSortField = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}
