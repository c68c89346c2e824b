package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/vidtube-api-go/internal/middleware"
)

// viewer is the acting user, or view.Anonymous on optional-auth routes.
func viewer(c *gin.Context) uuid.UUID {
	return middleware.Viewer(c)
}

// actor is the authenticated user. Routes using it sit behind RequireAuth,
// so a missing user is a wiring error and answers 401.
func actor(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		abort(c, http.StatusUnauthorized, "Unauthorized request!")
	}
	return id, ok
}
