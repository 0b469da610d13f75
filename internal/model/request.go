package model

import "time"

// ChatRequest represents one chat message from a farmer
type ChatRequest struct {
	Message   string              `json:"message" binding:"required"`
	SessionID string              `json:"session_id,omitempty"`
	Context   ConversationContext `json:"context"`
	History   []ConversationTurn  `json:"conversation_history,omitempty"`
}

// ChatResponse represents the assistant's answer to a ChatRequest
type ChatResponse struct {
	Success       bool                `json:"success"`
	SessionID     string              `json:"session_id"`
	InteractionID string              `json:"interaction_id"`
	Intent        Intent              `json:"intent"`
	Entities      EntityBag           `json:"entities"`
	Response      string              `json:"response"`
	Suggestions   []string            `json:"suggestions"`
	ContextUpdate *ContextDelta       `json:"context_update"`
	Context       ConversationContext `json:"context"`
	WeatherData   *WeatherReport      `json:"weather_data"`
	MarketData    *MarketQuote        `json:"market_data"`
	Offline       bool                `json:"offline,omitempty"`
	Notice        string              `json:"notice,omitempty"`
	Timestamp     time.Time           `json:"timestamp"`
}

// DiagnosisRequest represents a manual or externally assisted diagnosis
type DiagnosisRequest struct {
	Crop             string            `json:"crop"`
	Symptoms         []string          `json:"symptoms"`
	ExternalAnalysis *ExternalAnalysis `json:"external_analysis,omitempty"`
}

// DiagnosisResponse carries ranked candidates for a DiagnosisRequest
type DiagnosisResponse struct {
	Success       bool                 `json:"success"`
	InteractionID string               `json:"interaction_id"`
	Crop          string               `json:"crop"`
	Symptoms      []string             `json:"symptoms"`
	Candidates    []DiagnosisCandidate `json:"candidates"`
	Analysis      *ExternalAnalysis    `json:"analysis,omitempty"`
	SimilarCases  []SimilarCase        `json:"similar_cases,omitempty"`
	Offline       bool                 `json:"offline,omitempty"`
	Notice        string               `json:"notice,omitempty"`
	Took          int64                `json:"took_ms"`
}

// FeedbackRequest represents farmer feedback on an answer
type FeedbackRequest struct {
	InteractionID string `json:"interaction_id" binding:"required"`
	Action        string `json:"action" binding:"required"` // helpful, not_helpful, follow_up
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
