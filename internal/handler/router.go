package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube-api-go/internal/middleware"
	"github.com/vidtube/vidtube-api-go/internal/models"
)

// RouterConfig holds everything the HTTP router serves.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RouterConfig struct {
	Videos        *VideoHandler
	Tweets        *TweetHandler
	Comments      *CommentHandler
	Likes         *LikeHandler
	Subscriptions *SubscriptionHandler
	Playlists     *PlaylistHandler
	Dashboard     *DashboardHandler
	Users         *UserHandler
	Health        *HealthHandler

	Auth           *middleware.Authenticator
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler

	CORSOrigin         string
	MaxMultipartMemory int64
}

// NewRouter builds the gin engine with every /api/v1 route.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Handler())
	}
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))
	if cfg.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = cfg.MaxMultipartMemory
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewApiError(http.StatusNotFound, "Route not found"))
	})

	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	required := cfg.Auth.RequireAuth()
	optional := cfg.Auth.OptionalAuth()

	v1 := r.Group("/api/v1")

	health := v1.Group("/healthcheck")
	health.GET("", cfg.Health.LivenessProbe)
	health.GET("/ready", cfg.Health.ReadinessProbe)

	videos := v1.Group("/videos")
	videos.GET("", optional, cfg.Videos.List)
	videos.POST("", required, cfg.Videos.Publish)
	videos.GET("/:videoId", optional, cfg.Videos.Get)
	videos.PATCH("/:videoId", required, cfg.Videos.Update)
	videos.DELETE("/:videoId", required, cfg.Videos.Delete)
	videos.PATCH("/toggle/publish/:videoId", required, cfg.Videos.TogglePublish)

	tweets := v1.Group("/tweets")
	tweets.POST("", required, cfg.Tweets.Create)
	tweets.GET("/all", optional, cfg.Tweets.ListAll)
	tweets.GET("/user/:userId", optional, cfg.Tweets.ListByUser)
	tweets.PATCH("/:tweetId", required, cfg.Tweets.Update)
	tweets.DELETE("/:tweetId", required, cfg.Tweets.Delete)

	comments := v1.Group("/comments")
	comments.GET("/:videoId", optional, cfg.Comments.List)
	comments.POST("/:videoId", required, cfg.Comments.Create)
	comments.PATCH("/c/:commentId", required, cfg.Comments.Update)
	comments.DELETE("/c/:commentId", required, cfg.Comments.Delete)

	likes := v1.Group("/likes", required)
	likes.POST("/toggle/v/:videoId", cfg.Likes.ToggleVideo)
	likes.POST("/toggle/c/:commentId", cfg.Likes.ToggleComment)
	likes.POST("/toggle/t/:tweetId", cfg.Likes.ToggleTweet)
	likes.GET("/videos", cfg.Likes.LikedVideos)

	subscriptions := v1.Group("/subscriptions")
	subscriptions.POST("/c/:channelId", required, cfg.Subscriptions.Toggle)
	subscriptions.GET("/c/:channelId", optional, cfg.Subscriptions.Subscribers)
	subscriptions.GET("/u/:subscriberId", optional, cfg.Subscriptions.SubscribedTo)

	playlists := v1.Group("/playlist")
	playlists.POST("", required, cfg.Playlists.Create)
	playlists.GET("/user/:userId", optional, cfg.Playlists.ListByUser)
	playlists.GET("/:playlistId", optional, cfg.Playlists.Get)
	playlists.PATCH("/:playlistId", required, cfg.Playlists.Update)
	playlists.DELETE("/:playlistId", required, cfg.Playlists.Delete)
	playlists.PATCH("/add/:videoId/:playlistId", required, cfg.Playlists.AddVideo)
	playlists.PATCH("/remove/:videoId/:playlistId", required, cfg.Playlists.RemoveVideo)

	dashboard := v1.Group("/dashboard", required)
	dashboard.GET("/stats", cfg.Dashboard.Stats)
	dashboard.GET("/videos", cfg.Dashboard.Videos)

	users := v1.Group("/users")
	users.GET("/current-user", required, cfg.Users.Current)
	users.GET("/c/:username", optional, cfg.Users.Channel)
	users.GET("/history", required, cfg.Users.History)

	return r
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origin == "" || origin == "*" {
		// Credentials cannot be combined with a literal wildcard origin.
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	return cfg
}
