package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidtube/vidtube-api-go/internal/service"
)

// DashboardHandler serves the authenticated user's channel dashboard.
type DashboardHandler struct {
	dashboard service.DashboardService
}

func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	channel, ok := actor(c)
	if !ok {
		return
	}

	stats, err := h.dashboard.Stats(c.Request.Context(), channel)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats, "Channel stats fetched successfully!")
}

// Videos handles GET /dashboard/videos.
func (h *DashboardHandler) Videos(c *gin.Context) {
	channel, ok := actor(c)
	if !ok {
		return
	}

	videos, err := h.dashboard.Videos(c.Request.Context(), channel, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "Channel videos fetched successfully!")
}
