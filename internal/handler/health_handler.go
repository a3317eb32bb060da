package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	upstreamReady func() bool
}

// NewHealthHandler creates a new HealthHandler instance. upstreamReady
// reports whether the upstream API client is configured and usable.
func NewHealthHandler(upstreamReady func() bool) *HealthHandler {
	if upstreamReady == nil {
		upstreamReady = func() bool { return false }
	}
	return &HealthHandler{upstreamReady: upstreamReady}
}

// LivenessProbe checks if the application is running.
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessProbe checks if the application is ready to serve traffic.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	if !h.upstreamReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "DOWN",
			"upstream": "unconfigured",
			"time":     time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "UP",
		"upstream": "ready",
		"time":     time.Now(),
	})
}
