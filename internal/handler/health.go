package handler

import (
	"context"
	"net/http"
	"time"

	"farmagent/internal/service"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// HealthHandler reports liveness and store reachability
type HealthHandler struct {
	assistant *service.AssistantService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(assistant *service.AssistantService) *HealthHandler {
	return &HealthHandler{assistant: assistant}
}

// Health handles GET /api/health.
// The API stays up without a store, so a failed ping only changes the storage field.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	storage := "ok"
	if err := h.assistant.Ping(ctx); err != nil {
		storage = "unavailable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Farmer Agent API is running!",
		"storage":   storage,
		"timestamp": time.Now().UTC(),
	})
}
