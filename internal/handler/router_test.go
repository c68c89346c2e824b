package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube-api-go/internal/auth"
	"github.com/vidtube/vidtube-api-go/internal/config"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/middleware"
	"github.com/vidtube/vidtube-api-go/internal/service"
	"github.com/vidtube/vidtube-api-go/internal/validation"
)

type testServer struct {
	router        *gin.Engine
	videos        *mockVideoService
	tweets        *mockTweetService
	comments      *mockCommentService
	likes         *mockLikeService
	subscriptions *mockSubscriptionService
	playlists     *mockPlaylistService
	dashboard     *mockDashboardService
	users         *mockUserService
	user          uuid.UUID
	token         string
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	manager, err := auth.NewManager(config.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenTTL:    time.Hour,
	})
	require.NoError(t, err)

	uploads, err := NewUploader(t.TempDir(), 1<<20)
	require.NoError(t, err)

	s := &testServer{
		videos:        &mockVideoService{},
		tweets:        &mockTweetService{},
		comments:      &mockCommentService{},
		likes:         &mockLikeService{},
		subscriptions: &mockSubscriptionService{},
		playlists:     &mockPlaylistService{},
		dashboard:     &mockDashboardService{},
		users:         &mockUserService{},
		user:          uuid.New(),
	}
	s.token, err = manager.Issue(s.user, "alice", "alice@example.com")
	require.NoError(t, err)

	s.router = NewRouter(RouterConfig{
		Videos:        NewVideoHandler(s.videos, uploads),
		Tweets:        NewTweetHandler(s.tweets),
		Comments:      NewCommentHandler(s.comments),
		Likes:         NewLikeHandler(s.likes),
		Subscriptions: NewSubscriptionHandler(s.subscriptions),
		Playlists:     NewPlaylistHandler(s.playlists),
		Dashboard:     NewDashboardHandler(s.dashboard),
		Users:         NewUserHandler(s.users),
		Health:        NewHealthHandler(nil),
		Auth:          middleware.NewAuthenticator(manager, "accessToken"),
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string, authed bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func jsonBody(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func TestTweetRoutes(t *testing.T) {
	t.Run("create returns the composed tweet", func(t *testing.T) {
		s := newTestServer(t)
		s.tweets.On("Create", mock.Anything, s.user, "hello").Return(&models.TweetView{
			Content: "hello",
			Owner:   &models.OwnerProfile{ID: s.user, Username: "alice"},
		}, nil)

		rec, env := s.do(t, http.MethodPost, "/api/v1/tweets", jsonBody(map[string]string{"content": "hello"}), "application/json", true)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Tweet posted successfully!", env.Message)

		var tweet models.TweetView
		require.NoError(t, json.Unmarshal(env.Data, &tweet))
		assert.Equal(t, "hello", tweet.Content)
		assert.Equal(t, s.user, tweet.Owner.ID)
		assert.Zero(t, tweet.Likes)
		assert.False(t, tweet.IsLiked)
	})

	t.Run("blank content never reaches the service", func(t *testing.T) {
		s := newTestServer(t)

		rec, env := s.do(t, http.MethodPost, "/api/v1/tweets", jsonBody(map[string]string{"content": "   "}), "application/json", true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Content is required!", env.Message)
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Errors)
		s.tweets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("authentication is required", func(t *testing.T) {
		s := newTestServer(t)

		rec, env := s.do(t, http.MethodPost, "/api/v1/tweets", jsonBody(map[string]string{"content": "hi"}), "application/json", false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized request!", env.Message)
	})

	t.Run("listing all tweets uses paging defaults", func(t *testing.T) {
		s := newTestServer(t)
		page := view.PageRequest{Page: 1, Limit: 10}
		s.tweets.On("List", mock.Anything, (*uuid.UUID)(nil), page, view.Anonymous).
			Return(view.NewPage([]models.TweetView{{Content: "a"}}, 1, page, view.TweetLabels), nil)

		rec, env := s.do(t, http.MethodGet, "/api/v1/tweets/all", nil, "", false)

		assert.Equal(t, http.StatusOK, rec.Code)
		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data["tweets"], 1)
		assert.Equal(t, float64(1), data["totalTweets"])
		assert.Equal(t, false, data["hasNextPage"])
	})
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", &service.ValidationError{Message: "Content is required!"}, http.StatusBadRequest, "Content is required!"},
		{"conflict", &service.ConflictError{Message: "Video already added to playlist!"}, http.StatusBadRequest, "Video already added to playlist!"},
		{"not found", &service.NotFoundError{Message: "Tweet does not exist!"}, http.StatusNotFound, "Tweet does not exist!"},
		{"forbidden", &service.ForbiddenError{Message: "Unauthorized request!"}, http.StatusForbidden, "Unauthorized request!"},
		{"processing", &service.ProcessingError{Message: "delete tweet", Cause: errors.New("pg down")}, http.StatusInternalServerError, "Something went wrong while processing the request"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			id := uuid.New()
			s.tweets.On("Delete", mock.Anything, s.user, id).Return(tt.err)

			rec, env := s.do(t, http.MethodDelete, "/api/v1/tweets/"+id.String(), nil, "", true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.False(t, env.Success)
			assert.Equal(t, "null", string(env.Data))
			assert.NotContains(t, rec.Body.String(), "pg down")
		})
	}
}

func TestVideoRoutes(t *testing.T) {
	t.Run("anonymous detail view", func(t *testing.T) {
		s := newTestServer(t)
		id := uuid.New()
		s.videos.On("Watch", mock.Anything, id, view.Anonymous).
			Return(&models.VideoView{ID: id, IsPublished: true}, nil)

		rec, env := s.do(t, http.MethodGet, "/api/v1/videos/"+id.String(), nil, "", false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Video fetched successfully!", env.Message)
	})

	t.Run("malformed id", func(t *testing.T) {
		s := newTestServer(t)

		rec, env := s.do(t, http.MethodGet, "/api/v1/videos/not-a-uuid", nil, "", false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid videoId!", env.Message)
	})

	t.Run("list passes filters and paging", func(t *testing.T) {
		s := newTestServer(t)
		owner := uuid.New()
		page := view.PageRequest{Page: 2, Limit: 5}
		s.videos.On("List", mock.Anything, service.VideoQuery{
			Search:   "cats",
			UserID:   &owner,
			SortBy:   "views",
			SortType: "asc",
			Page:     page,
		}, s.user).Return(view.NewPage([]models.VideoView{}, 12, page, view.VideoLabels), nil)

		rec, env := s.do(t, http.MethodGet,
			"/api/v1/videos?page=2&limit=5&query=cats&sortBy=views&sortType=asc&userId="+owner.String(), nil, "", true)

		assert.Equal(t, http.StatusOK, rec.Code)
		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, float64(12), data["totalVideos"])
		assert.Equal(t, float64(3), data["totalPages"])
		assert.Equal(t, float64(6), data["serialNumberStartFrom"])
	})

	t.Run("unknown sort field", func(t *testing.T) {
		s := newTestServer(t)

		rec, _ := s.do(t, http.MethodGet, "/api/v1/videos?sortBy=owner", nil, "", false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("publish stores the uploads for the service", func(t *testing.T) {
		s := newTestServer(t)

		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		require.NoError(t, w.WriteField("title", "Intro"))
		require.NoError(t, w.WriteField("description", "first"))
		fw, err := w.CreateFormFile("videoFile", "clip.mp4")
		require.NoError(t, err)
		_, _ = fw.Write([]byte("video-bytes"))
		fw, err = w.CreateFormFile("thumbnail", "thumb.png")
		require.NoError(t, err)
		_, _ = fw.Write([]byte("image-bytes"))
		require.NoError(t, w.Close())

		s.videos.On("Publish", mock.Anything, s.user, mock.MatchedBy(func(in service.PublishVideoInput) bool {
			if in.Title != "Intro" || !strings.HasSuffix(in.VideoPath, ".mp4") || !strings.HasSuffix(in.ThumbnailPath, ".png") {
				return false
			}
			data, err := os.ReadFile(in.VideoPath)
			return err == nil && string(data) == "video-bytes"
		})).Return(&models.VideoView{Title: "Intro"}, nil)

		rec, env := s.do(t, http.MethodPost, "/api/v1/videos", &body, w.FormDataContentType(), true)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Video published successfully!", env.Message)
		s.videos.AssertExpectations(t)
	})

	t.Run("toggle publish names the new state", func(t *testing.T) {
		s := newTestServer(t)
		id := uuid.New()
		s.videos.On("TogglePublish", mock.Anything, s.user, id).Return(false, nil)

		rec, env := s.do(t, http.MethodPatch, "/api/v1/videos/toggle/publish/"+id.String(), nil, "", true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Video unpublished successfully!", env.Message)
		assert.JSONEq(t, `{"isPublished":false}`, string(env.Data))
	})
}

func TestLikeRoutes(t *testing.T) {
	tests := []struct {
		path    string
		target  func(uuid.UUID) models.LikeTarget
		liked   bool
		message string
	}{
		{"/api/v1/likes/toggle/v/", models.VideoTarget, true, "Video liked successfully!"},
		{"/api/v1/likes/toggle/c/", models.CommentTarget, false, "Comment unliked successfully!"},
		{"/api/v1/likes/toggle/t/", models.TweetTarget, true, "Tweet liked successfully!"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			s := newTestServer(t)
			id := uuid.New()
			s.likes.On("Toggle", mock.Anything, s.user, tt.target(id)).Return(tt.liked, nil)

			rec, env := s.do(t, http.MethodPost, tt.path+id.String(), nil, "", true)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.message, env.Message)
			var status struct {
				IsLiked bool `json:"isLiked"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &status))
			assert.Equal(t, tt.liked, status.IsLiked)
		})
	}
}

func TestSubscriptionRoutes(t *testing.T) {
	s := newTestServer(t)
	channel := uuid.New()
	s.subscriptions.On("Toggle", mock.Anything, s.user, channel).Return(true, nil)
	s.subscriptions.On("Toggle", mock.Anything, s.user, s.user).
		Return(false, &service.ValidationError{Message: "You cannot subscribe yourself!"})
	s.subscriptions.On("Subscribers", mock.Anything, channel, view.Anonymous).
		Return(&models.ChannelSubscribers{User: channel, Subscribers: []models.SubscriptionView{}}, nil)

	rec, env := s.do(t, http.MethodPost, "/api/v1/subscriptions/c/"+channel.String(), nil, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Subscribed successfully!", env.Message)

	rec, env = s.do(t, http.MethodPost, "/api/v1/subscriptions/c/"+s.user.String(), nil, "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot subscribe yourself!", env.Message)

	rec, env = s.do(t, http.MethodGet, "/api/v1/subscriptions/c/"+channel.String(), nil, "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"`+channel.String()+`","subscribers":[]}`, string(env.Data))
}

func TestPlaylistRoutes(t *testing.T) {
	s := newTestServer(t)
	playlistID := uuid.New()
	videoID := uuid.New()

	s.playlists.On("AddVideo", mock.Anything, s.user, playlistID, videoID).
		Return(nil, &service.ConflictError{Message: "Video already added to playlist!"})
	s.playlists.On("RemoveVideo", mock.Anything, s.user, playlistID, videoID).
		Return(&models.PlaylistView[models.VideoView]{ID: playlistID, Videos: []models.VideoView{}}, nil)
	s.playlists.On("Create", mock.Anything, s.user, service.PlaylistInput{Name: "Mix", Description: "songs"}).
		Return(&models.Playlist{ID: playlistID, Name: "Mix"}, nil)

	rec, env := s.do(t, http.MethodPatch, "/api/v1/playlist/add/"+videoID.String()+"/"+playlistID.String(), nil, "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Video already added to playlist!", env.Message)

	rec, env = s.do(t, http.MethodPatch, "/api/v1/playlist/remove/"+videoID.String()+"/"+playlistID.String(), nil, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Video removed from playlist successfully!", env.Message)

	rec, env = s.do(t, http.MethodPost, "/api/v1/playlist",
		jsonBody(map[string]string{"name": "Mix", "description": "songs"}), "application/json", true)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Playlist created successfully!", env.Message)

	rec, env = s.do(t, http.MethodPost, "/api/v1/playlist",
		jsonBody(map[string]string{"name": "Mix"}), "application/json", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required!", env.Message)
}

func TestDashboardAndUserRoutes(t *testing.T) {
	s := newTestServer(t)
	s.dashboard.On("Stats", mock.Anything, s.user).
		Return(&models.ChannelStats{TotalViews: 7, TotalVideos: 1, TotalLikes: 2, TotalSubscribers: 3}, nil)
	s.users.On("Channel", mock.Anything, "bob", s.user).
		Return(&models.ChannelProfile{Username: "bob", IsSubscribed: true}, nil)

	rec, env := s.do(t, http.MethodGet, "/api/v1/dashboard/stats", nil, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalViews":7,"totalVideos":1,"totalLikes":2,"totalSubscribers":3}`, string(env.Data))

	rec, _ = s.do(t, http.MethodGet, "/api/v1/dashboard/stats", nil, "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/users/c/bob", nil, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	var profile models.ChannelProfile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.True(t, profile.IsSubscribed)
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/nope", nil, "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}
