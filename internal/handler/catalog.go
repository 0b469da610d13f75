package handler

import (
	"net/http"
	"strings"

	"farmagent/internal/catalog"
	"farmagent/internal/service"
	"farmagent/internal/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves reference data and the weather and market feeds
type CatalogHandler struct {
	catalog *catalog.Catalog
	weather service.WeatherProvider
	market  service.MarketProvider
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog, weather service.WeatherProvider, market service.MarketProvider) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		weather: weather,
		market:  market,
	}
}

// Crops handles GET /api/crops?season=&q=
func (h *CatalogHandler) Crops(c *gin.Context) {
	crops := h.catalog.FilterCrops(c.Query("season"), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"success": true, "crops": crops})
}

// Weather handles GET /api/weather/:location
func (h *CatalogHandler) Weather(c *gin.Context) {
	location := strings.TrimSpace(c.Param("location"))
	if location == "" {
		respondError(c, http.StatusBadRequest, "Location is required")
		return
	}

	report, err := h.weather.Weather(c.Request.Context(), location)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// Market handles GET /api/market/:crop
func (h *CatalogHandler) Market(c *gin.Context) {
	crop := utils.NormalizeCrop(c.Param("crop"))
	if crop == "" {
		respondError(c, http.StatusBadRequest, "Crop is required")
		return
	}

	quote, err := h.market.Quote(c.Request.Context(), crop)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": quote})
}
