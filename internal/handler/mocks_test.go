package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/service"
)

type mockVideoService struct {
	mock.Mock
}

func (m *mockVideoService) List(ctx context.Context, q service.VideoQuery, viewer uuid.UUID) (*view.Page[models.VideoView], error) {
	args := m.Called(ctx, q, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*view.Page[models.VideoView]), args.Error(1)
}

func (m *mockVideoService) Publish(ctx context.Context, owner uuid.UUID, in service.PublishVideoInput) (*models.VideoView, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoView), args.Error(1)
}

func (m *mockVideoService) Watch(ctx context.Context, id, viewer uuid.UUID) (*models.VideoView, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoView), args.Error(1)
}

func (m *mockVideoService) Update(ctx context.Context, actor, id uuid.UUID, in service.UpdateVideoInput) (*models.VideoView, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoView), args.Error(1)
}

func (m *mockVideoService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockVideoService) TogglePublish(ctx context.Context, actor, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, actor, id)
	return args.Bool(0), args.Error(1)
}

type mockTweetService struct {
	mock.Mock
}

func (m *mockTweetService) Create(ctx context.Context, owner uuid.UUID, content string) (*models.TweetView, error) {
	args := m.Called(ctx, owner, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TweetView), args.Error(1)
}

func (m *mockTweetService) List(ctx context.Context, userID *uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.TweetView], error) {
	args := m.Called(ctx, userID, page, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*view.Page[models.TweetView]), args.Error(1)
}

func (m *mockTweetService) Update(ctx context.Context, actor, id uuid.UUID, content string) (*models.TweetView, error) {
	args := m.Called(ctx, actor, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TweetView), args.Error(1)
}

func (m *mockTweetService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockCommentService struct {
	mock.Mock
}

func (m *mockCommentService) List(ctx context.Context, videoID uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.CommentView], error) {
	args := m.Called(ctx, videoID, page, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*view.Page[models.CommentView]), args.Error(1)
}

func (m *mockCommentService) Create(ctx context.Context, actor, videoID uuid.UUID, content string) (*models.CommentView, error) {
	args := m.Called(ctx, actor, videoID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentView), args.Error(1)
}

func (m *mockCommentService) Update(ctx context.Context, actor, id uuid.UUID, content string) (*models.CommentView, error) {
	args := m.Called(ctx, actor, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentView), args.Error(1)
}

func (m *mockCommentService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockLikeService struct {
	mock.Mock
}

func (m *mockLikeService) Toggle(ctx context.Context, actor uuid.UUID, target models.LikeTarget) (bool, error) {
	args := m.Called(ctx, actor, target)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeService) LikedVideos(ctx context.Context, actor uuid.UUID) ([]models.LikedVideoView, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LikedVideoView), args.Error(1)
}

type mockSubscriptionService struct {
	mock.Mock
}

func (m *mockSubscriptionService) Toggle(ctx context.Context, actor, channelID uuid.UUID) (bool, error) {
	args := m.Called(ctx, actor, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionService) Subscribers(ctx context.Context, channelID, viewer uuid.UUID) (*models.ChannelSubscribers, error) {
	args := m.Called(ctx, channelID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelSubscribers), args.Error(1)
}

func (m *mockSubscriptionService) SubscribedTo(ctx context.Context, subscriberID, viewer uuid.UUID) (*models.UserSubscriptions, error) {
	args := m.Called(ctx, subscriberID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSubscriptions), args.Error(1)
}

type mockPlaylistService struct {
	mock.Mock
}

func (m *mockPlaylistService) Create(ctx context.Context, owner uuid.UUID, in service.PlaylistInput) (*models.Playlist, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *mockPlaylistService) ListByUser(ctx context.Context, userID, viewer uuid.UUID) ([]models.PlaylistView[models.VideoRef], error) {
	args := m.Called(ctx, userID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlaylistView[models.VideoRef]), args.Error(1)
}

func (m *mockPlaylistService) Get(ctx context.Context, id, viewer uuid.UUID) (*models.PlaylistView[models.VideoView], error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaylistView[models.VideoView]), args.Error(1)
}

func (m *mockPlaylistService) Update(ctx context.Context, actor, id uuid.UUID, in service.PlaylistInput) (*models.Playlist, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *mockPlaylistService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockPlaylistService) AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*models.PlaylistView[models.VideoView], error) {
	args := m.Called(ctx, actor, playlistID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaylistView[models.VideoView]), args.Error(1)
}

func (m *mockPlaylistService) RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*models.PlaylistView[models.VideoView], error) {
	args := m.Called(ctx, actor, playlistID, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaylistView[models.VideoView]), args.Error(1)
}

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) Stats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelStats), args.Error(1)
}

func (m *mockDashboardService) Videos(ctx context.Context, channelID uuid.UUID, page view.PageRequest) (*view.Page[models.VideoView], error) {
	args := m.Called(ctx, channelID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*view.Page[models.VideoView]), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Current(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) Channel(ctx context.Context, username string, viewer uuid.UUID) (*models.ChannelProfile, error) {
	args := m.Called(ctx, username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelProfile), args.Error(1)
}

func (m *mockUserService) History(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HistoryEntry), args.Error(1)
}

func (m *mockUserService) Create(ctx context.Context, in service.CreateUserInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
