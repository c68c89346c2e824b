package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Every user is also a channel.
type User struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	Username     string      `db:"username" json:"username"`
	Email        string      `db:"email" json:"email"`
	FullName     string      `db:"full_name" json:"fullName"`
	Avatar       string      `db:"avatar" json:"avatar"`
	CoverImage   string      `db:"cover_image" json:"coverImage"`
	WatchHistory []uuid.UUID `db:"watch_history" json:"watchHistory"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a User; usernames are stored lowercase.
func NewUser(username, email, fullName, avatar string) *User {
	now := time.Now()
	return &User{
		Username:     strings.ToLower(strings.TrimSpace(username)),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		FullName:     strings.TrimSpace(fullName),
		Avatar:       avatar,
		WatchHistory: []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
