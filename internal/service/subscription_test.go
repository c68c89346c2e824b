package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/events"
)

func TestSubscriptionService_Toggle(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()
	channel := uuid.New()

	t.Run("subscribes", func(t *testing.T) {
		subs := &mockSubscriptionRepository{}
		users := &mockUserRepository{}
		publisher := &mockPublisher{}
		svc := NewSubscriptionService(subs, users, publisher)

		users.On("Exists", ctx, channel).Return(true, nil)
		subs.On("Toggle", ctx, actor, channel).Return(true, nil)
		publisher.On("Publish", ctx, eventOfType(events.SubscriptionToggled)).Return(nil)

		subscribed, err := svc.Toggle(ctx, actor, channel)
		require.NoError(t, err)
		assert.True(t, subscribed)
		publisher.AssertExpectations(t)
	})

	t.Run("self subscription", func(t *testing.T) {
		subs := &mockSubscriptionRepository{}
		svc := NewSubscriptionService(subs, &mockUserRepository{}, events.NopPublisher{})

		_, err := svc.Toggle(ctx, actor, actor)
		assert.EqualError(t, err, "You cannot subscribe yourself!")
		subs.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("check violation maps to validation", func(t *testing.T) {
		subs := &mockSubscriptionRepository{}
		users := &mockUserRepository{}
		svc := NewSubscriptionService(subs, users, events.NopPublisher{})
		users.On("Exists", ctx, channel).Return(true, nil)
		subs.On("Toggle", ctx, actor, channel).Return(false, fmt.Errorf("toggle subscription: %w", db.ErrCheckViolation))

		_, err := svc.Toggle(ctx, actor, channel)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown channel", func(t *testing.T) {
		users := &mockUserRepository{}
		svc := NewSubscriptionService(&mockSubscriptionRepository{}, users, events.NopPublisher{})
		users.On("Exists", ctx, channel).Return(false, nil)

		_, err := svc.Toggle(ctx, actor, channel)
		assert.EqualError(t, err, "User does not exist!")
	})
}

func TestSubscriptionService_Lists(t *testing.T) {
	ctx := context.Background()
	channel := uuid.New()

	subs := &mockSubscriptionRepository{}
	users := &mockUserRepository{}
	svc := NewSubscriptionService(subs, users, events.NopPublisher{})

	users.On("Exists", ctx, channel).Return(true, nil)
	subs.On("ListSubscribers", ctx, channel, view.Anonymous).
		Return([]models.SubscriptionView{{ID: uuid.New()}}, nil)
	subs.On("ListSubscribedTo", ctx, channel, view.Anonymous).
		Return([]models.SubscriptionView{}, nil)

	subscribers, err := svc.Subscribers(ctx, channel, view.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, channel, subscribers.User)
	assert.Len(t, subscribers.Subscribers, 1)

	subscribedTo, err := svc.SubscribedTo(ctx, channel, view.Anonymous)
	require.NoError(t, err)
	assert.Empty(t, subscribedTo.SubscribedTo)
}
