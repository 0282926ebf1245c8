package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	serviceName string
	now         func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, now: time.Now}
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   h.serviceName,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
