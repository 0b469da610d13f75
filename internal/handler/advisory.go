package handler

import (
	"net/http"

	"farmagent/internal/model"
	"farmagent/internal/service"

	"github.com/gin-gonic/gin"
)

// Assistance handles POST /api/assistance
func Assistance(c *gin.Context) {
	var req model.AssistanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"recommendations": service.GenerateRecommendations(req),
	})
}

// SoilAnalysis handles POST /api/soil-analysis
func SoilAnalysis(c *gin.Context) {
	var sample model.SoilSample
	if err := c.ShouldBindJSON(&sample); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": service.AnalyzeSoil(sample),
	})
}
