package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube-api-go/internal/models"
	"github.com/vidtube/vidtube-api-go/internal/service"
)

// PlaylistHandler handles playlist endpoints.
type PlaylistHandler struct {
	playlists service.PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(playlists service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// Create handles POST /playlist.
func (h *PlaylistHandler) Create(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}

	var req models.PlaylistRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "All fields are required!")
		return
	}

	playlist, err := h.playlists.Create(c.Request.Context(), owner, service.PlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, playlist, "Playlist created successfully!")
}

// ListByUser handles GET /playlist/user/:userId.
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	playlists, err := h.playlists.ListByUser(c.Request.Context(), userID, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlists, "Playlists fetched successfully!")
}

// Get handles GET /playlist/:playlistId.
func (h *PlaylistHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlists.Get(c.Request.Context(), id, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "Playlist fetched successfully!")
}

// Update handles PATCH /playlist/:playlistId.
func (h *PlaylistHandler) Update(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	var req models.PlaylistRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "All fields are required!")
		return
	}

	playlist, err := h.playlists.Update(c.Request.Context(), owner, id, service.PlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "Playlist updated successfully!")
}

// Delete handles DELETE /playlist/:playlistId.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	if err := h.playlists.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"playlistId": id}, "Playlist deleted successfully!")
}

// AddVideo handles PATCH /playlist/add/:videoId/:playlistId.
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlists.AddVideo(c.Request.Context(), owner, playlistID, videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "Video added to playlist successfully!")
}

// RemoveVideo handles PATCH /playlist/remove/:videoId/:playlistId.
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	owner, ok := actor(c)
	if !ok {
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlists.RemoveVideo(c.Request.Context(), owner, playlistID, videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "Video removed from playlist successfully!")
}
