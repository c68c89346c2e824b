package models

import (
	"time"

	"github.com/google/uuid"
)

// OwnerProfile is the public projection of a user embedded in other views.
// The subscription fields are only filled where the view asks for them.
type OwnerProfile struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	FullName         string    `json:"fullName"`
	Avatar           string    `json:"avatar"`
	SubscribersCount *int64    `json:"subscribersCount,omitempty"`
	IsSubscribed     *bool     `json:"isSubscribed,omitempty"`
}

// VideoView is a video with its owner and engagement counters.
// Owner is nil when the owning user no longer exists.
type VideoView struct {
	ID          uuid.UUID     `json:"id"`
	VideoFile   Asset         `json:"videoFile"`
	Thumbnail   Asset         `json:"thumbnail"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Duration    float64       `json:"duration"`
	Views       int64         `json:"views"`
	IsPublished bool          `json:"isPublished"`
	Owner       *OwnerProfile `json:"owner"`
	Likes       int64         `json:"likes"`
	Comments    int64         `json:"comments"`
	IsLiked     bool          `json:"isLiked"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type TweetView struct {
	ID        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	Owner     *OwnerProfile `json:"owner"`
	Likes     int64         `json:"likes"`
	IsLiked   bool          `json:"isLiked"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type CommentView struct {
	ID        uuid.UUID     `json:"id"`
	VideoID   uuid.UUID     `json:"videoId"`
	Content   string        `json:"content"`
	Owner     *OwnerProfile `json:"owner"`
	Likes     int64         `json:"likes"`
	IsLiked   bool          `json:"isLiked"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ChannelProfile is a user seen as a channel.
type ChannelProfile struct {
	ID                        uuid.UUID `json:"id"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	FullName                  string    `json:"fullName"`
	Avatar                    string    `json:"avatar"`
	CoverImage                string    `json:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
	CreatedAt                 time.Time `json:"createdAt"`
}

// SubscriptionView is one row of a subscriber or subscribed-to listing.
// User is the other side of the relation, with the viewer's subscription
// state toward that user.
type SubscriptionView struct {
	ID           uuid.UUID     `json:"id"`
	User         *OwnerProfile `json:"user"`
	SubscribedAt time.Time     `json:"subscribedAt"`
}

// VideoRef is the compact video projection used in playlist listings.
type VideoRef struct {
	ID        uuid.UUID `json:"id"`
	VideoFile Asset     `json:"videoFile"`
	Thumbnail Asset     `json:"thumbnail"`
}

// PlaylistView is a playlist with its videos resolved. V is VideoRef in
// listings and VideoView in the detail view.
type PlaylistView[V any] struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Owner       *OwnerProfile `json:"owner"`
	TotalVideos int           `json:"totalVideos"`
	TotalViews  int64         `json:"totalViews"`
	Videos      []V           `json:"videos"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// LikedVideoView is an entry of the viewer's liked videos.
type LikedVideoView struct {
	ID      uuid.UUID `json:"id"`
	LikedAt time.Time `json:"likedAt"`
	Video   VideoView `json:"video"`
}

// HistoryEntry is a watch history item. Position 0 is the most recent.
type HistoryEntry struct {
	Position int       `json:"position"`
	Video    VideoView `json:"video"`
}

// ChannelStats aggregates a channel's dashboard numbers.
type ChannelStats struct {
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

// ChannelSubscribers lists the subscribers of a channel.
type ChannelSubscribers struct {
	User        uuid.UUID          `json:"user"`
	Subscribers []SubscriptionView `json:"subscribers"`
}

// UserSubscriptions lists the channels a user subscribes to.
type UserSubscriptions struct {
	User         uuid.UUID          `json:"user"`
	SubscribedTo []SubscriptionView `json:"subscribedTo"`
}
