package handler

import (
	"errors"
	"net/http"

	"farmagent/internal/model"
	"farmagent/internal/repository"
	"farmagent/internal/service"

	"github.com/gin-gonic/gin"
)

var validActions = map[string]bool{
	"helpful":     true,
	"not_helpful": true,
	"follow_up":   true,
}

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	assistant *service.AssistantService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(assistant *service.AssistantService) *FeedbackHandler {
	return &FeedbackHandler{
		assistant: assistant,
	}
}

// Submit handles POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if !validActions[req.Action] {
		respondError(c, http.StatusBadRequest, "Invalid action. Must be one of: helpful, not_helpful, follow_up")
		return
	}

	err := h.assistant.LogFeedback(c.Request.Context(), req.InteractionID, req.Action)
	switch {
	case errors.Is(err, service.ErrInvalidInteraction), errors.Is(err, service.ErrEmptyAction):
		respondError(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, "Failed to log feedback: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback logged successfully",
	})
}
