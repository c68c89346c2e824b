package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/models"
	"github.com/vidtube/vidtube-api-go/internal/service"
)

// TweetHandler handles tweet endpoints.
type TweetHandler struct {
	tweets service.TweetService
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(tweets service.TweetService) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

// Create handles POST /tweets.
func (h *TweetHandler) Create(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}

	var req models.ContentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "Content is required!")
		return
	}

	tweet, err := h.tweets.Create(c.Request.Context(), owner, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, tweet, "Tweet posted successfully!")
}

// ListAll handles GET /tweets/all.
func (h *TweetHandler) ListAll(c *gin.Context) {
	h.list(c, nil)
}

// ListByUser handles GET /tweets/user/:userId.
func (h *TweetHandler) ListByUser(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	h.list(c, &id)
}

func (h *TweetHandler) list(c *gin.Context, userID *uuid.UUID) {
	page, err := h.tweets.List(c.Request.Context(), userID, pageRequest(c), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Tweets fetched successfully!")
}

// Update handles PATCH /tweets/:tweetId.
func (h *TweetHandler) Update(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	var req models.ContentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "Content is required!")
		return
	}

	tweet, err := h.tweets.Update(c.Request.Context(), owner, id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, tweet, "Tweet updated successfully!")
}

// Delete handles DELETE /tweets/:tweetId.
func (h *TweetHandler) Delete(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "tweetId")
	if !ok {
		return
	}

	if err := h.tweets.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"tweetId": id}, "Tweet deleted successfully!")
}
