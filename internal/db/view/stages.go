package view

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
)

// Projected column names. Row structs scanned from composed queries use
// these as db tags.
const (
	ColOwnerID       = "owner_ref_id"
	ColOwnerUsername = "owner_username"
	ColOwnerFullName = "owner_full_name"
	ColOwnerAvatar   = "owner_avatar"

	ColLikes             = "likes"
	ColIsLiked           = "is_liked"
	ColComments          = "comments"
	ColSubscribersCount  = "subscribers_count"
	ColIsSubscribed      = "is_subscribed"
	ColSubscribedToCount = "channels_subscribed_to_count"
)

// OwnerProfile left-joins the user referenced by ownerCol and projects its
// public fields. The owner columns are NULL when the user is gone.
func OwnerProfile(ownerCol string) Stage {
	return func(q *Query) {
		q.Join(fmt.Sprintf("LEFT JOIN users ow ON ow.id = %s", ownerCol))
		q.Select(
			"ow.id AS "+ColOwnerID,
			"ow.username AS "+ColOwnerUsername,
			"ow.full_name AS "+ColOwnerFullName,
			"ow.avatar AS "+ColOwnerAvatar,
		)
	}
}

// LikeCount projects the number of likes whose target is the base row.
func LikeCount(kind models.TargetKind) Stage {
	return func(q *Query) {
		q.Select(fmt.Sprintf(
			"(SELECT COUNT(*) FROM likes lc WHERE lc.target_kind = %s AND lc.target_id = %s) AS %s",
			q.Arg(string(kind)), q.Col("id"), ColLikes,
		))
	}
}

// ViewerLikeState projects whether viewer likes the base row.
func ViewerLikeState(kind models.TargetKind, viewer uuid.UUID) Stage {
	return func(q *Query) {
		q.Select(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM likes lv WHERE lv.target_kind = %s AND lv.target_id = %s AND lv.liked_by = %s) AS %s",
			q.Arg(string(kind)), q.Col("id"), q.Arg(viewer), ColIsLiked,
		))
	}
}

// SubscriptionStats projects the subscriber count of the channel referenced
// by channelCol and whether viewer is among its subscribers.
func SubscriptionStats(channelCol string, viewer uuid.UUID) Stage {
	return func(q *Query) {
		q.Select(
			fmt.Sprintf("(SELECT COUNT(*) FROM subscriptions sc WHERE sc.channel_id = %s) AS %s",
				channelCol, ColSubscribersCount),
			fmt.Sprintf("EXISTS (SELECT 1 FROM subscriptions sv WHERE sv.channel_id = %s AND sv.subscriber_id = %s) AS %s",
				channelCol, q.Arg(viewer), ColIsSubscribed),
		)
	}
}

// SubscribedToCount projects how many channels the user in userCol follows.
func SubscribedToCount(userCol string) Stage {
	return func(q *Query) {
		q.Select(fmt.Sprintf("(SELECT COUNT(*) FROM subscriptions st WHERE st.subscriber_id = %s) AS %s",
			userCol, ColSubscribedToCount))
	}
}

// CommentCount projects the number of comments on the base video row.
func CommentCount() Stage {
	return func(q *Query) {
		q.Select(fmt.Sprintf("(SELECT COUNT(*) FROM comments cc WHERE cc.video_id = %s) AS %s",
			q.Col("id"), ColComments))
	}
}

// Filter binds value into cond, which must contain a single %s for the
// placeholder, e.g. Filter("v.owner_id = %s", id).
func Filter(cond string, value any) Stage {
	return func(q *Query) {
		q.Where(fmt.Sprintf(cond, q.Arg(value)))
	}
}

// ByID selects the base row with the given id.
func ByID(id uuid.UUID) Stage {
	return func(q *Query) {
		q.Where(q.Col("id") + " = " + q.Arg(id))
	}
}

// Order appends ordering expressions.
func Order(exprs ...string) Stage {
	return func(q *Query) {
		q.OrderBy(exprs...)
	}
}

// Owner converts the nullable owner columns into a profile, nil when the
// owner row was missing.
func Owner(id *uuid.UUID, username, fullName, avatar *string) *models.OwnerProfile {
	if id == nil {
		return nil
	}
	p := &models.OwnerProfile{ID: *id}
	if username != nil {
		p.Username = *username
	}
	if fullName != nil {
		p.FullName = *fullName
	}
	if avatar != nil {
		p.Avatar = *avatar
	}
	return p
}
