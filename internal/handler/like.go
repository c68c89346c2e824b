package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/db/models"
	api "github.com/vidtube/vidtube-api-go/internal/models"
	"github.com/vidtube/vidtube-api-go/internal/service"
)

// LikeHandler handles like endpoints.
type LikeHandler struct {
	likes service.LikeService
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(likes service.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// ToggleVideo handles POST /likes/toggle/v/:videoId.
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, "videoId", "Video", models.VideoTarget)
}

// ToggleComment handles POST /likes/toggle/c/:commentId.
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, "commentId", "Comment", models.CommentTarget)
}

// ToggleTweet handles POST /likes/toggle/t/:tweetId.
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, "tweetId", "Tweet", models.TweetTarget)
}

func (h *LikeHandler) toggle(c *gin.Context, param, noun string, target func(uuid.UUID) models.LikeTarget) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, param)
	if !ok {
		return
	}

	liked, err := h.likes.Toggle(c.Request.Context(), user, target(id))
	if err != nil {
		respondError(c, err)
		return
	}

	message := noun + " unliked successfully!"
	if liked {
		message = noun + " liked successfully!"
	}
	respond(c, http.StatusOK, api.LikeStatus{IsLiked: liked}, message)
}

// LikedVideos handles GET /likes/videos.
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	videos, err := h.likes.LikedVideos(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "Liked videos fetched successfully!")
}
