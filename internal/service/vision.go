package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"farmagent/internal/config"
	"farmagent/internal/model"
	"farmagent/internal/utils"
)

// ErrAnalyzerDisabled is returned when no vision backend is configured
var ErrAnalyzerDisabled = errors.New("image analyzer is not enabled (missing API key)")

// ImageAnalyzer detects the crop and visible symptoms in a photo
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*model.ExternalAnalysis, error)
}

// StubAnalyzer returns a fixed detection after a delay.
// It stands in for a real model when none is configured.
type StubAnalyzer struct {
	delay time.Duration
	now   func() time.Time
}

// NewStubAnalyzer creates a stub that waits delay before answering
func NewStubAnalyzer(delay time.Duration) *StubAnalyzer {
	return &StubAnalyzer{delay: delay, now: time.Now}
}

// AnalyzeImage waits for the configured delay, or until ctx is done
func (a *StubAnalyzer) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*model.ExternalAnalysis, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &model.ExternalAnalysis{
		CropType:         "Tomato",
		DetectedSymptoms: []string{model.SymptomBrownSpots, model.SymptomYellowingLeaves},
		Confidence:       0.85,
		AIProcessed:      true,
		ImageSize:        int64(len(image)),
		Timestamp:        a.now().UTC(),
	}, nil
}

// OpenAIClient handles OpenAI-compatible chat completion calls
type OpenAIClient struct {
	config     *config.AnalyzerConfig
	httpClient *http.Client
}

// ClientOption customizes an OpenAIClient
type ClientOption func(*OpenAIClient)

// WithHTTPClient replaces the HTTP client, mainly for tests
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *OpenAIClient) {
		c.httpClient = hc
	}
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.AnalyzerConfig, opts ...ClientOption) *OpenAIClient {
	c := &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatMessage is a single message. Content is a string or a list of ContentPart.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal message
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image by URL or data URI
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, ErrAnalyzerDisabled
	}

	if req.Model == "" {
		req.Model = c.config.VisionModel
	}
	if req.Temperature == 0 && c.config.Temperature > 0 {
		req.Temperature = c.config.Temperature
	}
	if req.MaxTokens == 0 && c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

const visionSystemPrompt = `You are an agronomist examining a photo of a crop plant.
Identify the crop and any visible symptoms.

Respond ONLY with a JSON object:
{"crop_type": "<crop name>", "detected_symptoms": ["<label>", ...], "confidence": <0.0-1.0>}

Use only these symptom labels: %s.
If no symptom is visible, return an empty detected_symptoms array.`

// visionAnswer is the JSON shape the model is asked to produce
type visionAnswer struct {
	CropType         string   `json:"crop_type"`
	DetectedSymptoms []string `json:"detected_symptoms"`
	Confidence       float64  `json:"confidence"`
}

// VisionAnalyzer asks an OpenAI-compatible vision model to read a crop photo
type VisionAnalyzer struct {
	client *OpenAIClient
	now    func() time.Time
}

// NewVisionAnalyzer creates an analyzer over client
func NewVisionAnalyzer(client *OpenAIClient) *VisionAnalyzer {
	return &VisionAnalyzer{client: client, now: time.Now}
}

// AnalyzeImage sends the photo as a data URI and canonicalizes the answer.
// Symptom labels outside the vocabulary are dropped.
func (a *VisionAnalyzer) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*model.ExternalAnalysis, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	req := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: fmt.Sprintf(visionSystemPrompt, strings.Join(model.SymptomVocabulary, ", "))},
			{Role: "user", Content: []ContentPart{
				{Type: "text", Text: "Analyze this crop image."},
				{Type: "image_url", ImageURL: &ImageURL{URL: dataURI, Detail: "low"}},
			}},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := a.client.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from vision model")
	}

	var answer visionAnswer
	if err := utils.DecodeLooseJSON(resp.Choices[0].Message.Content, &answer); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if answer.Confidence < 0 || answer.Confidence > 1 {
		return nil, fmt.Errorf("AI response validation failed: confidence %.2f out of range", answer.Confidence)
	}

	// A missing list stays nil so the analysis is treated as incomplete
	var symptoms []string
	if answer.DetectedSymptoms != nil {
		symptoms = utils.KnownSymptoms(answer.DetectedSymptoms)
	}

	return &model.ExternalAnalysis{
		CropType:         utils.NormalizeCrop(answer.CropType),
		DetectedSymptoms: symptoms,
		Confidence:       answer.Confidence,
		AIProcessed:      true,
		ImageSize:        int64(len(image)),
		Timestamp:        a.now().UTC(),
	}, nil
}

// NewImageAnalyzer picks the vision analyzer when configured, else the stub
func NewImageAnalyzer(cfg *config.AnalyzerConfig, opts ...ClientOption) ImageAnalyzer {
	if cfg.Enabled {
		return NewVisionAnalyzer(NewOpenAIClient(cfg, opts...))
	}
	return NewStubAnalyzer(cfg.StubDelay)
}
