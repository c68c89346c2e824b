package service

import (
	"context"
	"net/mail"

	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/pkg/logger"
	"go.uber.org/zap"
)

// CreateUserInput carries a new account. Account registration lives outside
// the API; the admin CLI uses this to seed users.
type CreateUserInput struct {
	Username string
	Email    string
	FullName string
	Avatar   string
}

// UserService reads user and channel information.
type UserService interface {
	Current(ctx context.Context, id uuid.UUID) (*models.User, error)
	Channel(ctx context.Context, username string, viewer uuid.UUID) (*models.ChannelProfile, error)
	History(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, error)
	Create(ctx context.Context, in CreateUserInput) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Current(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User does not exist!", "get current user")
	}
	return user, nil
}

func (s *userService) Channel(ctx context.Context, username string, viewer uuid.UUID) (*models.ChannelProfile, error) {
	if blank(username) {
		return nil, &ValidationError{Message: "Username is missing!"}
	}
	profile, err := s.users.ChannelProfile(ctx, username, viewer)
	if err != nil {
		return nil, lookupError(err, "Channel does not exist!", "get channel")
	}
	return profile, nil
}

func (s *userService) History(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, error) {
	history, err := s.users.WatchHistory(ctx, id)
	if err != nil {
		return nil, processingError("get watch history", err)
	}
	return history, nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if blank(in.Username) || blank(in.Email) || blank(in.FullName) {
		return nil, &ValidationError{Message: "All fields are required!"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, &ValidationError{Message: "Invalid email address!"}
	}

	user := models.NewUser(in.Username, in.Email, in.FullName, in.Avatar)
	if err := s.users.Create(ctx, user); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, &ConflictError{Message: "User with email or username already exists!"}
		}
		return nil, processingError("create user", err)
	}

	logger.Log.Info("User created",
		zap.String("userId", user.ID.String()),
		zap.String("username", user.Username),
	)
	return user, nil
}
