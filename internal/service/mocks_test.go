package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/repository"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/events"
	"github.com/vidtube/vidtube-api-go/internal/storage"
)

type mockVideoRepository struct {
	mock.Mock
}

func (m *mockVideoRepository) Create(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	if args.Error(0) == nil && video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *mockVideoRepository) GetView(ctx context.Context, id, viewer uuid.UUID) (*models.VideoView, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoView), args.Error(1)
}

func (m *mockVideoRepository) List(ctx context.Context, filter repository.VideoFilter, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.VideoView], error) {
	args := m.Called(ctx, filter, page, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*view.Page[models.VideoView]), args.Error(1)
}

func (m *mockVideoRepository) Update(ctx context.Context, video *models.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideoRepository) TogglePublished(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockVideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVideoRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (*repository.CascadeResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CascadeResult), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ChannelProfile(ctx context.Context, username string, viewer uuid.UUID) (*models.ChannelProfile, error) {
	args := m.Called(ctx, username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelProfile), args.Error(1)
}

func (m *mockUserRepository) PushWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	return m.Called(ctx, userID, videoID).Error(0)
}

func (m *mockUserRepository) WatchHistory(ctx context.Context, userID uuid.UUID) ([]models.HistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HistoryEntry), args.Error(1)
}

type mockTweetRepository struct {
	mock.Mock
}

func (m *mockTweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	args := m.Called(ctx, tweet)
	if args.Error(0) == nil && tweet.ID == uuid.Nil {
		tweet.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockTweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tweet), args.Error(1)
}

func (m *mockTweetRepository) GetView(ctx context.Context, id, viewer uuid.UUID) (*models.TweetView, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TweetView), args.Error(1)
}

func (m *mockTweetRepository) List(ctx context.Context, ownerID *uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.TweetView], error) {
	args := m.Called(ctx, ownerID, page, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*view.Page[models.TweetView]), args.Error(1)
}

func (m *mockTweetRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	return m.Called(ctx, id, content).Error(0)
}

func (m *mockTweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	if args.Error(0) == nil && comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *mockCommentRepository) GetView(ctx context.Context, id, viewer uuid.UUID) (*models.CommentView, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentView), args.Error(1)
}

func (m *mockCommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, page view.PageRequest, viewer uuid.UUID) (*view.Page[models.CommentView], error) {
	args := m.Called(ctx, videoID, page, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*view.Page[models.CommentView]), args.Error(1)
}

func (m *mockCommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	return m.Called(ctx, id, content).Error(0)
}

func (m *mockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockLikeRepository struct {
	mock.Mock
}

func (m *mockLikeRepository) Toggle(ctx context.Context, target models.LikeTarget, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, target, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepository) TargetExists(ctx context.Context, target models.LikeTarget) (bool, error) {
	args := m.Called(ctx, target)
	return args.Bool(0), args.Error(1)
}

func (m *mockLikeRepository) Count(ctx context.Context, target models.LikeTarget) (int64, error) {
	args := m.Called(ctx, target)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLikeRepository) LikedVideos(ctx context.Context, userID uuid.UUID) ([]models.LikedVideoView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LikedVideoView), args.Error(1)
}

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	args := m.Called(ctx, subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepository) ListSubscribers(ctx context.Context, channelID, viewer uuid.UUID) ([]models.SubscriptionView, error) {
	args := m.Called(ctx, channelID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionView), args.Error(1)
}

func (m *mockSubscriptionRepository) ListSubscribedTo(ctx context.Context, subscriberID, viewer uuid.UUID) ([]models.SubscriptionView, error) {
	args := m.Called(ctx, subscriberID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubscriptionView), args.Error(1)
}

type mockPlaylistRepository struct {
	mock.Mock
}

func (m *mockPlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	args := m.Called(ctx, playlist)
	if args.Error(0) == nil && playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockPlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *mockPlaylistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	return m.Called(ctx, playlist).Error(0)
}

func (m *mockPlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPlaylistRepository) ListByOwner(ctx context.Context, ownerID, viewer uuid.UUID) ([]models.PlaylistView[models.VideoRef], error) {
	args := m.Called(ctx, ownerID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlaylistView[models.VideoRef]), args.Error(1)
}

func (m *mockPlaylistRepository) GetView(ctx context.Context, id, viewer uuid.UUID) (*models.PlaylistView[models.VideoView], error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaylistView[models.VideoView]), args.Error(1)
}

type mockDashboardRepository struct {
	mock.Mock
}

func (m *mockDashboardRepository) Stats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelStats), args.Error(1)
}

type mockAssetStore struct {
	mock.Mock
}

func (m *mockAssetStore) Upload(ctx context.Context, kind storage.Kind, localPath string) (*storage.Object, error) {
	args := m.Called(ctx, kind, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *mockAssetStore) Delete(ctx context.Context, kind storage.Kind, publicID string) error {
	return m.Called(ctx, kind, publicID).Error(0)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueAssetDelete(ctx context.Context, kind storage.Kind, publicID, reason string) error {
	return m.Called(ctx, kind, publicID, reason).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

// eventOfType matches a published event by type.
func eventOfType(eventType string) any {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == eventType })
}
