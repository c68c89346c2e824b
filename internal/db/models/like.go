package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TargetKind names the entity kind a like points at.
type TargetKind string

// Likeable entity kinds.
const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// Valid reports whether k is one of the known kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// LikeTarget identifies exactly one likeable entity.
type LikeTarget struct {
	Kind TargetKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

func VideoTarget(id uuid.UUID) LikeTarget   { return LikeTarget{Kind: TargetVideo, ID: id} }
func CommentTarget(id uuid.UUID) LikeTarget { return LikeTarget{Kind: TargetComment, ID: id} }
func TweetTarget(id uuid.UUID) LikeTarget   { return LikeTarget{Kind: TargetTweet, ID: id} }

func (t LikeTarget) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.ID)
}

// Like records that a user likes a target. Its existence is the like state.
type Like struct {
	ID        uuid.UUID  `json:"id"`
	Target    LikeTarget `json:"target"`
	LikedBy   uuid.UUID  `json:"likedBy"`
	CreatedAt time.Time  `json:"createdAt"`
}
