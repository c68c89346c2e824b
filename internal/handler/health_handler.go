package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. checks are keyed by the
// dependency name reported in the readiness response.
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 3 * time.Second}
}

// LivenessProbe checks if the application is running.
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	}, "OK")
}

// ReadinessProbe checks if the application is ready to serve traffic.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := gin.H{"status": "UP", "time": time.Now()}
	var failed []string
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			status[name] = "unhealthy"
			failed = append(failed, name+": "+err.Error())
			continue
		}
		status[name] = "healthy"
	}

	if len(failed) > 0 {
		status["status"] = "DOWN"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"statusCode": http.StatusServiceUnavailable,
			"data":       status,
			"message":    "Service unavailable",
			"success":    false,
			"errors":     failed,
		})
		return
	}
	respond(c, http.StatusOK, status, "OK")
}
