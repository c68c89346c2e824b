package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube-api-go/internal/service"
)

// UserHandler handles user and channel endpoints.
type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Current handles GET /users/current-user.
func (h *UserHandler) Current(c *gin.Context) {
	id, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.users.Current(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Current user fetched successfully!")
}

// Channel handles GET /users/c/:username.
func (h *UserHandler) Channel(c *gin.Context) {
	profile, err := h.users.Channel(c.Request.Context(), c.Param("username"), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "User channel fetched successfully!")
}

// History handles GET /users/history.
func (h *UserHandler) History(c *gin.Context) {
	id, ok := actor(c)
	if !ok {
		return
	}

	history, err := h.users.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, history, "Watch history fetched successfully!")
}
