package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"farmagent/internal/model"
	"farmagent/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	assistant *service.AssistantService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(assistant *service.AssistantService) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
	}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Message is required")
		return
	}

	response, err := h.assistant.Chat(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			respondError(c, http.StatusBadRequest, "Message is required")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to process chat message")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ChatStream handles POST /api/chat/stream - SSE streaming chat
func (h *ChatHandler) ChatStream(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		respondError(c, http.StatusBadRequest, "Message is required")
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	response, err := h.assistant.ChatStream(c.Request.Context(), &req, func(event string, data any) error {
		if err := c.Request.Context().Err(); err != nil {
			return err
		}
		sendSSE(c, event, data)
		flusher.Flush()
		return nil
	})
	if err != nil {
		sendSSE(c, "error", map[string]any{"success": false, "error": err.Error()})
		flusher.Flush()
		return
	}

	sendSSE(c, "result", response)
	flusher.Flush()

	sendSSE(c, "done", nil)
	flusher.Flush()
}

// Suggestions handles GET /api/suggestions/:intent
func (h *ChatHandler) Suggestions(c *gin.Context) {
	intent := model.Intent(c.Param("intent"))
	if !intent.Valid() {
		intent = model.IntentGeneral
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"intent":      intent,
		"suggestions": service.SuggestionsFor(intent),
	})
}

// sendSSE sends a Server-Sent Event
func sendSSE(c *gin.Context, event string, data any) {
	if data == nil {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event)
		return
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		fmt.Fprintf(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
		return
	}
	fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(jsonData))
}

// respondError writes the common error envelope
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}
