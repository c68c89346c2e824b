package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/events"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// TweetService manages tweets.
type TweetService interface {
	Create(ctx context.Context, owner uuid.UUID, content string) (*models.TweetView, error)

	// List pages tweets, of one user when userID is set.
	List(ctx context.Context, userID *uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.TweetView], error)

	Update(ctx context.Context, actor, id uuid.UUID, content string) (*models.TweetView, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
}

type tweetService struct {
	tweets repository.TweetRepository
	users  repository.UserRepository
	events notifier
}

// NewTweetService creates a new TweetService.
func NewTweetService(tweets repository.TweetRepository, users repository.UserRepository, publisher events.Publisher) TweetService {
	return &tweetService{tweets: tweets, users: users, events: notifier{publisher: publisher}}
}

func (s *tweetService) Create(ctx context.Context, owner uuid.UUID, content string) (*models.TweetView, error) {
	if blank(content) {
		return nil, &ValidationError{Message: "Content is required!"}
	}

	tweet := &models.Tweet{OwnerID: owner, Content: strings.TrimSpace(content)}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, processingError("create tweet", err)
	}

	logger.Log.Info("Tweet posted", zap.String("tweetId", tweet.ID.String()))
	s.events.emit(ctx, events.TweetCreated, owner, tweet.ID, nil)

	v, err := s.tweets.GetView(ctx, tweet.ID, owner)
	if err != nil {
		return nil, processingError("load tweet", err)
	}
	return v, nil
}

func (s *tweetService) List(ctx context.Context, userID *uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.TweetView], error) {
	if userID != nil {
		exists, err := s.users.Exists(ctx, *userID)
		if err != nil {
			return nil, processingError("check user", err)
		}
		if !exists {
			return nil, &NotFoundError{Message: "User does not exist!"}
		}
	}

	p, err := s.tweets.List(ctx, userID, page, viewer)
	if err != nil {
		return nil, processingError("list tweets", err)
	}
	return p, nil
}

func (s *tweetService) owned(ctx context.Context, actor, id uuid.UUID) error {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "Tweet does not exist!", "get tweet")
	}
	if tweet.OwnerID != actor {
		return notOwner()
	}
	return nil
}

func (s *tweetService) Update(ctx context.Context, actor, id uuid.UUID, content string) (*models.TweetView, error) {
	if blank(content) {
		return nil, &ValidationError{Message: "Content is required!"}
	}
	if err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}

	if err := s.tweets.UpdateContent(ctx, id, strings.TrimSpace(content)); err != nil {
		return nil, lookupError(err, "Tweet does not exist!", "update tweet")
	}

	v, err := s.tweets.GetView(ctx, id, actor)
	if err != nil {
		return nil, lookupError(err, "Tweet does not exist!", "load tweet")
	}
	return v, nil
}

func (s *tweetService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.tweets.Delete(ctx, id); err != nil {
		return lookupError(err, "Tweet does not exist!", "delete tweet")
	}
	logger.Log.Info("Tweet deleted", zap.String("tweetId", id.String()))
	return nil
}
