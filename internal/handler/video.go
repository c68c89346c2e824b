package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube-api-go/internal/db/view"
	"github.com/vidtube/vidtube-api-go/internal/models"
	"github.com/vidtube/vidtube-api-go/internal/service"
	"github.com/vidtube/vidtube-api-go/internal/storage"
	"github.com/vidtube/vidtube-api-go/internal/validation"
)

// VideoHandler handles video endpoints.
type VideoHandler struct {
	videos  service.VideoService
	uploads *Uploader
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videos service.VideoService, uploads *Uploader) *VideoHandler {
	return &VideoHandler{videos: videos, uploads: uploads}
}

// List handles GET /videos.
func (h *VideoHandler) List(c *gin.Context) {
	var q models.VideoListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err, "Invalid query parameters!")
		return
	}

	query := service.VideoQuery{
		Search:   q.Query,
		SortBy:   q.SortBy,
		SortType: q.SortType,
		Page:     view.ParsePageRequest(q.Page, q.Limit),
	}
	if q.UserID != "" {
		id, err := validation.ParseID("userId", q.UserID)
		if err != nil {
			abort(c, http.StatusBadRequest, err.Error())
			return
		}
		query.UserID = &id
	}

	page, err := h.videos.List(c.Request.Context(), query, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page, "Videos fetched successfully!")
}

// Publish handles POST /videos.
func (h *VideoHandler) Publish(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}

	var form models.VideoForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err, "All fields are required!")
		return
	}

	videoPath, err := h.uploads.Save(c, "videoFile", storage.KindVideo)
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	thumbnailPath, err := h.uploads.Save(c, "thumbnail", storage.KindImage)
	if err != nil {
		discard(videoPath)
		abort(c, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.videos.Publish(c.Request.Context(), owner, service.PublishVideoInput{
		Title:         form.Title,
		Description:   form.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, v, "Video published successfully!")
}

// Get handles GET /videos/:videoId.
func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	v, err := h.videos.Watch(c.Request.Context(), id, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, v, "Video fetched successfully!")
}

// Update handles PATCH /videos/:videoId.
func (h *VideoHandler) Update(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	var form models.VideoForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err, "All fields are required!")
		return
	}

	thumbnailPath, err := h.uploads.Save(c, "thumbnail", storage.KindImage)
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.videos.Update(c.Request.Context(), owner, id, service.UpdateVideoInput{
		Title:         form.Title,
		Description:   form.Description,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, v, "Video updated successfully!")
}

// Delete handles DELETE /videos/:videoId.
func (h *VideoHandler) Delete(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	if err := h.videos.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"videoId": id}, "Video deleted successfully!")
}

// TogglePublish handles PATCH /videos/toggle/publish/:videoId.
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	published, err := h.videos.TogglePublish(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Video unpublished successfully!"
	if published {
		message = "Video published successfully!"
	}
	respond(c, http.StatusOK, models.PublishStatus{IsPublished: published}, message)
}

