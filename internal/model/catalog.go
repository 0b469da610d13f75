package model

import "time"

// Crop is a catalog entry describing how a crop is grown
type Crop struct {
	ID             int      `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	ScientificName string   `json:"scientific_name" yaml:"scientific_name"`
	Season         string   `json:"season" yaml:"season"`
	Duration       string   `json:"duration" yaml:"duration"`
	WaterNeeds     string   `json:"water_needs" yaml:"water_needs"`
	Temperature    string   `json:"temperature" yaml:"temperature"`
	Sunlight       string   `json:"sunlight" yaml:"sunlight"`
	Description    string   `json:"description" yaml:"description"`
	Tips           []string `json:"tips" yaml:"tips"`
	Difficulty     string   `json:"difficulty" yaml:"difficulty"`
	Yield          string   `json:"yield" yaml:"yield"`
}

// MarketPrice is the reference price for a crop at a named market
type MarketPrice struct {
	Price    float64 `json:"price" yaml:"price"`
	Unit     string  `json:"unit" yaml:"unit"`
	Category string  `json:"category" yaml:"category"`
	Market   string  `json:"market" yaml:"market"`
}

// MarketQuote is a priced snapshot returned to farmers
type MarketQuote struct {
	Crop        string    `json:"crop"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	Category    string    `json:"category"`
	Market      string    `json:"market"`
	Currency    string    `json:"currency"`
	Trend       string    `json:"trend"`
	LastUpdated time.Time `json:"last_updated"`
}

// WeatherReport is the current weather plus a short forecast for a location
type WeatherReport struct {
	Location    string        `json:"location"`
	Temperature int           `json:"temperature"`
	Humidity    int           `json:"humidity"`
	Condition   string        `json:"condition"`
	Forecast    []ForecastDay `json:"forecast,omitempty"`
}

// ForecastDay is one day of a forecast
type ForecastDay struct {
	Day       string `json:"day"`
	Temp      int    `json:"temp"`
	Condition string `json:"condition"`
}

// SoilSample holds the measurements submitted for soil analysis
type SoilSample struct {
	SoilType      string   `json:"soil_type"`
	PH            float64  `json:"ph" binding:"required"`
	Nitrogen      float64  `json:"nitrogen"`
	Phosphorus    float64  `json:"phosphorus"`
	Potassium     float64  `json:"potassium"`
	OrganicMatter *float64 `json:"organic_matter,omitempty"`
	Moisture      *float64 `json:"moisture,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
}

// SoilRecommendation is one prioritized soil action
type SoilRecommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// NutrientReading compares a measured nutrient with its optimal level
type NutrientReading struct {
	Nutrient string  `json:"nutrient"`
	Value    float64 `json:"value"`
	Optimal  float64 `json:"optimal"`
	Unit     string  `json:"unit"`
}

// SoilAnalysis is the result of analyzing a SoilSample
type SoilAnalysis struct {
	SoilType        string               `json:"soil_type"`
	PH              float64              `json:"ph"`
	Nitrogen        float64              `json:"nitrogen"`
	Phosphorus      float64              `json:"phosphorus"`
	Potassium       float64              `json:"potassium"`
	HealthScore     int                  `json:"health_score"`
	Recommendations []SoilRecommendation `json:"recommendations"`
	Nutrients       []NutrientReading    `json:"nutrients"`
}

// AssistanceRequest asks for general farming recommendations
type AssistanceRequest struct {
	Crop     string `json:"crop"`
	SoilType string `json:"soil_type"`
	Weather  string `json:"weather"`
	Issue    string `json:"issue"`
}

// Recommendations are per-activity farming recommendations
type Recommendations struct {
	Irrigation    string `json:"irrigation"`
	Fertilization string `json:"fertilization"`
	PestControl   string `json:"pest_control"`
	Harvesting    string `json:"harvesting"`
	Storage       string `json:"storage"`
}
