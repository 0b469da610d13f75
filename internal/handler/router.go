package handler

import (
	"farmagent/internal/catalog"
	"farmagent/internal/service"

	"github.com/gin-gonic/gin"
)

// Options carries what the API routes need
type Options struct {
	Assistant      *service.AssistantService
	Catalog        *catalog.Catalog
	Weather        service.WeatherProvider
	Market         service.MarketProvider
	MaxUploadBytes int64
}

// RegisterRoutes mounts every /api endpoint on router
func RegisterRoutes(router gin.IRouter, opts Options) {
	chatHandler := NewChatHandler(opts.Assistant)
	diagnosisHandler := NewDiagnosisHandler(opts.Assistant, opts.MaxUploadBytes)
	catalogHandler := NewCatalogHandler(opts.Catalog, opts.Weather, opts.Market)
	feedbackHandler := NewFeedbackHandler(opts.Assistant)
	healthHandler := NewHealthHandler(opts.Assistant)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		// Conversation
		api.POST("/chat", chatHandler.Chat)
		api.POST("/chat/stream", chatHandler.ChatStream)
		api.GET("/suggestions/:intent", chatHandler.Suggestions)

		// Diagnosis
		api.POST("/diagnose", diagnosisHandler.Diagnose)
		api.POST("/diagnose/image", diagnosisHandler.DiagnoseImage)
		api.POST("/analyze-image", diagnosisHandler.AnalyzeImage)
		api.GET("/symptoms", diagnosisHandler.Symptoms)

		// Reference data and feeds
		api.GET("/crops", catalogHandler.Crops)
		api.GET("/weather/:location", catalogHandler.Weather)
		api.GET("/market/:crop", catalogHandler.Market)

		// Advisory
		api.POST("/assistance", Assistance)
		api.POST("/soil-analysis", SoilAnalysis)

		api.POST("/feedback", feedbackHandler.Submit)
	}
}
