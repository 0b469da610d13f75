package service

import (
	"testing"

	"farmagent/internal/model"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestGenerateRecommendations(t *testing.T) {
	base := GenerateRecommendations(model.AssistanceRequest{Crop: "Wheat"})
	assert.Contains(t, base.Irrigation, "regular irrigation schedule")
	assert.Contains(t, base.PestControl, "Monitor for common pests")

	dry := GenerateRecommendations(model.AssistanceRequest{Weather: "Dry", Issue: "pest"})
	assert.Contains(t, dry.Irrigation, "drip irrigation")
	assert.Contains(t, dry.PestControl, "neem-based")
	assert.Equal(t, base.Fertilization, dry.Fertilization)
}

func TestAnalyzeSoil(t *testing.T) {
	tests := []struct {
		name       string
		sample     model.SoilSample
		wantScore  int
		wantTitles []string
	}{
		{
			name:       "healthy",
			sample:     model.SoilSample{SoilType: "loam", PH: 6.8, Nitrogen: 60, Phosphorus: 40, Potassium: 50, OrganicMatter: floatPtr(3.5)},
			wantScore:  100,
			wantTitles: []string{"Optimal Soil Conditions"},
		},
		{
			name:       "acidic and depleted",
			sample:     model.SoilSample{PH: 5.2, Nitrogen: 20, Phosphorus: 10, Potassium: 10, OrganicMatter: floatPtr(1)},
			wantScore:  25,
			wantTitles: []string{"Low pH (Acidic Soil)", "Low Nitrogen", "Low Phosphorus", "Low Potassium", "Low Organic Matter"},
		},
		{
			name:       "alkaline without organic reading",
			sample:     model.SoilSample{PH: 8.1, Nitrogen: 55, Phosphorus: 35, Potassium: 45},
			wantScore:  80,
			wantTitles: []string{"High pH (Alkaline Soil)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSoil(tt.sample)
			assert.Equal(t, tt.wantScore, got.HealthScore)

			titles := make([]string, 0, len(got.Recommendations))
			for _, r := range got.Recommendations {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestAnalyzeSoilNutrients(t *testing.T) {
	got := AnalyzeSoil(model.SoilSample{PH: 7, Nitrogen: 40, Phosphorus: 30, Potassium: 40})
	assert.Len(t, got.Nutrients, 3)

	got = AnalyzeSoil(model.SoilSample{PH: 7, OrganicMatter: floatPtr(2.5)})
	assert.Len(t, got.Nutrients, 4)
	assert.Equal(t, "%", got.Nutrients[3].Unit)
}
