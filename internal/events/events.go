// Package events publishes domain events to the message broker.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types, also used as routing keys.
const (
	VideoPublished      = "video.published"
	VideoDeleted        = "video.deleted"
	TweetCreated        = "tweet.created"
	CommentCreated      = "comment.created"
	LikeToggled         = "like.toggled"
	SubscriptionToggled = "subscription.toggled"
)

// Event is a fact about something that changed.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	ActorID    uuid.UUID      `json:"actorId"`
	SubjectID  uuid.UUID      `json:"subjectId"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType string, actor, subject uuid.UUID, data map[string]any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		ActorID:    actor,
		SubjectID:  subject,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
