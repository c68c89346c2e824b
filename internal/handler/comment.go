package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube-api-go/internal/models"
	"github.com/vidtube/vidtube-api-go/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	comments service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List handles GET /comments/:videoId.
func (h *CommentHandler) List(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	page, err := h.comments.List(c.Request.Context(), videoID, pageRequest(c), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Video Comments fetched successfully!")
}

// Create handles POST /comments/:videoId.
func (h *CommentHandler) Create(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	var req models.ContentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "Content is required!")
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), owner, videoID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, comment, "Comment added successfully!")
}

// Update handles PATCH /comments/c/:commentId.
func (h *CommentHandler) Update(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	var req models.ContentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "Content is required!")
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), owner, id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, comment, "Comment updated successfully!")
}

// Delete handles DELETE /comments/c/:commentId.
func (h *CommentHandler) Delete(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"commentId": id}, "Comment deleted successfully!")
}
