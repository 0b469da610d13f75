package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"farmagent/internal/model"
	"farmagent/internal/repository"
	"farmagent/internal/session"
	"farmagent/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Boundary errors returned to handlers as 4xx
var (
	ErrEmptyMessage       = errors.New("message is required")
	ErrInvalidInteraction = errors.New("invalid interaction id")
	ErrEmptyAction        = errors.New("action is required")
)

const (
	maxSimilarCases = 5
	logTimeout      = 5 * time.Second

	offlineChatNotice      = "Live weather or market data is unavailable right now. The advice above does not include it."
	offlineDiagnosisNotice = "Image analysis is unavailable right now. Results are based on the crop and symptoms you entered."
)

// EventCallback is called for streaming chat events
type EventCallback func(event string, data any) error

// Dependencies wires the collaborators of AssistantService.
// Nil Weather or Market disables that lookup; other nil fields get in-memory defaults.
type Dependencies struct {
	Chat         *ChatEngine
	Diagnoser    *DiagnosisEngine
	Weather      WeatherProvider
	Market       MarketProvider
	Analyzer     ImageAnalyzer
	Repo         repository.Repository
	Sessions     *session.Store
	Logger       *zap.Logger
	HistoryLimit int
}

// AssistantService handles chat and diagnosis business logic
type AssistantService struct {
	chat         *ChatEngine
	diagnoser    *DiagnosisEngine
	weather      WeatherProvider
	market       MarketProvider
	analyzer     ImageAnalyzer
	repo         repository.Repository
	sessions     *session.Store
	logger       *zap.Logger
	historyLimit int
	now          func() time.Time

	// pending tracks async interaction logging
	pending sync.WaitGroup

	// inflight holds a channel per interaction whose write has not finished yet
	inflightMu sync.Mutex
	inflight   map[string]chan struct{}
}

// NewAssistantService creates a new assistant service
func NewAssistantService(deps Dependencies) *AssistantService {
	s := &AssistantService{
		chat:         deps.Chat,
		diagnoser:    deps.Diagnoser,
		weather:      deps.Weather,
		market:       deps.Market,
		analyzer:     deps.Analyzer,
		repo:         deps.Repo,
		sessions:     deps.Sessions,
		logger:       deps.Logger,
		historyLimit: deps.HistoryLimit,
		now:          time.Now,
		inflight:     make(map[string]chan struct{}),
	}
	if s.chat == nil {
		s.chat = NewChatEngine(nil, nil)
	}
	if s.diagnoser == nil {
		s.diagnoser = NewDiagnosisEngine()
	}
	if s.analyzer == nil {
		s.analyzer = NewStubAnalyzer(0)
	}
	if s.repo == nil {
		s.repo = repository.NoopRepository{}
	}
	if s.sessions == nil {
		s.sessions = session.NewStore(1024, 0)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.historyLimit <= 0 {
		s.historyLimit = model.DefaultHistoryLimit
	}
	return s
}

// Close waits for pending interaction logs to finish
func (s *AssistantService) Close() {
	s.pending.Wait()
}

// Chat runs one chat turn, enriches it with live data and records it
func (s *AssistantService) Chat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	return s.runChat(ctx, req, nil)
}

// ChatStream runs one chat turn and reports each stage through callback.
// Events: start, intent, reply, weather, market. The caller sends the final result.
func (s *AssistantService) ChatStream(ctx context.Context, req *model.ChatRequest, callback EventCallback) (*model.ChatResponse, error) {
	return s.runChat(ctx, req, callback)
}

func (s *AssistantService) runChat(ctx context.Context, req *model.ChatRequest, emit EventCallback) (*model.ChatResponse, error) {
	if emit == nil {
		emit = func(string, any) error { return nil }
	}
	if req == nil || strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	startTime := s.now()

	sessionID, conv := s.resolveSession(req)
	if err := emit("start", map[string]any{"session_id": sessionID}); err != nil {
		return nil, err
	}

	history := model.RecentTurns(req.History, s.historyLimit)
	turn := s.chat.ProcessChatTurn(req.Message, conv, history)

	if err := emit("intent", map[string]any{"intent": turn.Intent, "entities": turn.Entities}); err != nil {
		return nil, err
	}
	if err := emit("reply", map[string]any{
		"response":       turn.Reply,
		"suggestions":    turn.Suggestions,
		"context_update": turn.ContextDelta,
	}); err != nil {
		return nil, err
	}

	resp := &model.ChatResponse{
		Success:       true,
		SessionID:     sessionID,
		InteractionID: uuid.NewString(),
		Intent:        turn.Intent,
		Entities:      turn.Entities,
		Response:      turn.Reply,
		Suggestions:   turn.Suggestions,
		ContextUpdate: turn.ContextDelta,
	}

	// Live data for weather and market questions
	switch turn.Intent {
	case model.IntentWeather:
		if s.weather != nil && conv.HasLocation() {
			report, err := s.weather.Weather(ctx, *conv.Location)
			if err != nil {
				s.logger.Warn("weather lookup failed", zap.String("location", *conv.Location), zap.Error(err))
				resp.Offline = true
			} else {
				checked := s.now().UTC()
				conv.LastWeatherCheck = &checked
				resp.WeatherData = report
				if err := emit("weather", report); err != nil {
					return nil, err
				}
			}
		}
	case model.IntentMarket:
		if crop, ok := turn.Entities.First(model.EntityCrops); ok && s.market != nil {
			quote, err := s.market.Quote(ctx, utils.NormalizeCrop(crop))
			if err != nil {
				s.logger.Warn("market lookup failed", zap.String("crop", crop), zap.Error(err))
				resp.Offline = true
			} else {
				resp.MarketData = quote
				if err := emit("market", quote); err != nil {
					return nil, err
				}
			}
		}
	}
	if resp.Offline {
		resp.Notice = offlineChatNotice
	}

	conv = conv.Merge(turn.ContextDelta)
	s.sessions.Put(sessionID, conv)
	resp.Context = conv
	resp.Timestamp = s.now().UTC()

	intent := string(turn.Intent)
	s.logInteraction(&model.Interaction{
		ID:             resp.InteractionID,
		Kind:           model.InteractionChat,
		Query:          &req.Message,
		Intent:         &intent,
		Entities:       model.EntitiesToJSONMap(turn.Entities),
		ResponseTimeMs: int(s.now().Sub(startTime).Milliseconds()),
		CreatedAt:      resp.Timestamp,
	})

	return resp, nil
}

// resolveSession loads the stored context for a known session and overlays
// the request context; unknown or missing ids start a new session
func (s *AssistantService) resolveSession(req *model.ChatRequest) (string, model.ConversationContext) {
	if stored, ok := s.sessions.Get(req.SessionID); ok {
		return req.SessionID, stored.Overlay(req.Context)
	}
	return session.NewID(), req.Context.Clone()
}

// Diagnose ranks likely issues for the given crop and symptoms and
// attaches similar past cases
func (s *AssistantService) Diagnose(ctx context.Context, req *model.DiagnosisRequest) (*model.DiagnosisResponse, error) {
	if req == nil {
		req = &model.DiagnosisRequest{}
	}
	startTime := s.now()

	crop := utils.NormalizeCrop(req.Crop)
	symptoms := utils.NormalizeSymptoms(req.Symptoms)

	external := canonicalAnalysis(req.ExternalAnalysis)
	candidates := s.diagnoser.Diagnose(crop, symptoms, external)
	if external.Usable() {
		crop = external.CropType
		symptoms = external.DetectedSymptoms
	}

	resp := &model.DiagnosisResponse{
		Success:       true,
		InteractionID: uuid.NewString(),
		Crop:          crop,
		Symptoms:      symptoms,
		Candidates:    candidates,
		Analysis:      req.ExternalAnalysis,
	}

	vec := SymptomVector(symptoms)
	if crop != "" {
		similar, err := s.repo.SimilarDiagnoses(ctx, crop, vec, maxSimilarCases)
		if err != nil {
			s.logger.Warn("similar case lookup failed", zap.String("crop", crop), zap.Error(err))
		} else {
			resp.SimilarCases = similar
		}
	}

	resp.Took = s.now().Sub(startTime).Milliseconds()

	top := candidates[0]
	s.logInteraction(&model.Interaction{
		ID:             resp.InteractionID,
		Kind:           model.InteractionDiagnosis,
		Crop:           optionalString(crop),
		Symptoms:       model.JSONArray(symptoms),
		TopCandidate:   &top.Name,
		Confidence:     &top.Confidence,
		AIAssisted:     top.AIAssisted,
		SymptomVector:  &vec,
		ResponseTimeMs: int(resp.Took),
		CreatedAt:      s.now().UTC(),
	})

	return resp, nil
}

// AnalyzeImage runs the image analyzer only
func (s *AssistantService) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*model.ExternalAnalysis, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("no image provided")
	}
	analysis, err := s.analyzer.AnalyzeImage(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze image: %w", err)
	}
	return analysis, nil
}

// DiagnoseImage analyzes the image and diagnoses from its findings.
// When analysis fails the manual crop and symptoms are used and the
// response is marked offline.
func (s *AssistantService) DiagnoseImage(ctx context.Context, image []byte, mimeType string, manual *model.DiagnosisRequest) (*model.DiagnosisResponse, error) {
	req := &model.DiagnosisRequest{}
	if manual != nil {
		req.Crop = manual.Crop
		req.Symptoms = manual.Symptoms
	}

	analysis, err := s.AnalyzeImage(ctx, image, mimeType)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("image analysis failed, using manual input", zap.Error(err))
		resp, derr := s.Diagnose(ctx, req)
		if derr != nil {
			return nil, derr
		}
		resp.Offline = true
		resp.Notice = offlineDiagnosisNotice
		return resp, nil
	}

	req.ExternalAnalysis = analysis
	return s.Diagnose(ctx, req)
}

// LogFeedback records a farmer's reaction to an answer.
// If the interaction is still being written it waits for that write first.
func (s *AssistantService) LogFeedback(ctx context.Context, interactionID, action string) error {
	if _, err := uuid.Parse(interactionID); err != nil {
		return ErrInvalidInteraction
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrEmptyAction
	}
	if err := s.awaitInteraction(ctx, interactionID); err != nil {
		return err
	}
	return s.repo.LogFeedback(ctx, interactionID, action)
}

// awaitInteraction blocks until the pending write for id, if any, has finished
func (s *AssistantService) awaitInteraction(ctx context.Context, id string) error {
	s.inflightMu.Lock()
	done, ok := s.inflight[id]
	s.inflightMu.Unlock()
	if !ok {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ping reports whether the interaction store is reachable
func (s *AssistantService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// logInteraction writes it in the background; failures are only logged
func (s *AssistantService) logInteraction(it *model.Interaction) {
	done := make(chan struct{})
	s.inflightMu.Lock()
	s.inflight[it.ID] = done
	s.inflightMu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer func() {
			s.inflightMu.Lock()
			delete(s.inflight, it.ID)
			s.inflightMu.Unlock()
			close(done)
		}()
		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()
		if err := s.repo.LogInteraction(ctx, it); err != nil {
			s.logger.Warn("failed to log interaction",
				zap.String("id", it.ID),
				zap.String("kind", it.Kind),
				zap.Error(err),
			)
		}
	}()
}

// canonicalAnalysis returns a copy of a with crop and symptom labels canonicalized
func canonicalAnalysis(a *model.ExternalAnalysis) *model.ExternalAnalysis {
	if a == nil {
		return nil
	}
	out := *a
	out.CropType = utils.NormalizeCrop(a.CropType)
	if a.DetectedSymptoms != nil {
		out.DetectedSymptoms = utils.NormalizeSymptoms(a.DetectedSymptoms)
	}
	return &out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
