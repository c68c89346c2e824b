package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/events"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// SubscriptionService manages channel subscriptions.
type SubscriptionService interface {
	// Toggle flips the actor's subscription to channelID and returns the new state.
	Toggle(ctx context.Context, actor, channelID uuid.UUID) (bool, error)
	Subscribers(ctx context.Context, channelID, viewer uuid.UUID) (*models.ChannelSubscribers, error)
	SubscribedTo(ctx context.Context, subscriberID, viewer uuid.UUID) (*models.UserSubscriptions, error)
}

type subscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	events        notifier
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(subscriptions repository.SubscriptionRepository, users repository.UserRepository, publisher events.Publisher) SubscriptionService {
	return &subscriptionService{subscriptions: subscriptions, users: users, events: notifier{publisher: publisher}}
}

func (s *subscriptionService) userExists(ctx context.Context, id uuid.UUID) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return processingError("check user", err)
	}
	if !exists {
		return &NotFoundError{Message: "User does not exist!"}
	}
	return nil
}

func (s *subscriptionService) Toggle(ctx context.Context, actor, channelID uuid.UUID) (bool, error) {
	if actor == channelID {
		return false, &ValidationError{Message: "You cannot subscribe yourself!"}
	}
	if err := s.userExists(ctx, channelID); err != nil {
		return false, err
	}

	subscribed, err := s.subscriptions.Toggle(ctx, actor, channelID)
	if err != nil {
		if db.IsCheckViolation(err) {
			return false, &ValidationError{Message: "You cannot subscribe yourself!"}
		}
		return false, processingError("toggle subscription", err)
	}

	logger.Log.Info("Subscription toggled",
		zap.String("subscriberId", actor.String()),
		zap.String("channelId", channelID.String()),
		zap.Bool("subscribed", subscribed),
	)
	s.events.emit(ctx, events.SubscriptionToggled, actor, channelID, map[string]any{"subscribed": subscribed})
	return subscribed, nil
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelID, viewer uuid.UUID) (*models.ChannelSubscribers, error) {
	if err := s.userExists(ctx, channelID); err != nil {
		return nil, err
	}
	subs, err := s.subscriptions.ListSubscribers(ctx, channelID, viewer)
	if err != nil {
		return nil, processingError("list subscribers", err)
	}
	return &models.ChannelSubscribers{User: channelID, Subscribers: subs}, nil
}

func (s *subscriptionService) SubscribedTo(ctx context.Context, subscriberID, viewer uuid.UUID) (*models.UserSubscriptions, error) {
	if err := s.userExists(ctx, subscriberID); err != nil {
		return nil, err
	}
	subs, err := s.subscriptions.ListSubscribedTo(ctx, subscriberID, viewer)
	if err != nil {
		return nil, processingError("list subscriptions", err)
	}
	return &models.UserSubscriptions{User: subscriberID, SubscribedTo: subs}, nil
}
