package service

import (
	"strings"

	"farmagent/internal/model"
)

// Soil thresholds
const (
	phLow              = 6.0
	phHigh             = 7.5
	nitrogenMin        = 50.0
	phosphorusMin      = 30.0
	potassiumMin       = 40.0
	organicMatterMin   = 2.0
	organicMatterIdeal = 3.0
)

// GenerateRecommendations returns activity recommendations, adjusted for dry
// weather and reported pest issues
func GenerateRecommendations(req model.AssistanceRequest) model.Recommendations {
	rec := model.Recommendations{
		Irrigation:    "Maintain regular irrigation schedule based on weather conditions.",
		Fertilization: "Apply balanced fertilizer with NPK ratio 10:26:26.",
		PestControl:   "Monitor for common pests and apply organic pesticides if needed.",
		Harvesting:    "Harvest when crop shows optimal maturity indicators.",
		Storage:       "Store in cool, dry conditions to prevent spoilage.",
	}

	if strings.EqualFold(strings.TrimSpace(req.Weather), "dry") {
		rec.Irrigation = "Increase irrigation frequency. Consider drip irrigation for water efficiency."
	}
	if strings.EqualFold(strings.TrimSpace(req.Issue), "pest") {
		rec.PestControl = "Apply neem-based organic pesticide. Monitor daily for pest activity."
	}

	return rec
}

// AnalyzeSoil scores a soil sample and lists prioritized corrections
func AnalyzeSoil(sample model.SoilSample) model.SoilAnalysis {
	var recs []model.SoilRecommendation

	switch {
	case sample.PH < phLow:
		recs = append(recs, model.SoilRecommendation{
			Type:        "warning",
			Title:       "Low pH (Acidic Soil)",
			Description: "Add lime to increase soil pH. Apply 2-4 tons per acre of agricultural lime.",
			Priority:    "High",
		})
	case sample.PH > phHigh:
		recs = append(recs, model.SoilRecommendation{
			Type:        "warning",
			Title:       "High pH (Alkaline Soil)",
			Description: "Add sulfur to decrease soil pH. Apply 1-2 tons per acre of elemental sulfur.",
			Priority:    "Medium",
		})
	}

	if sample.Nitrogen < nitrogenMin {
		recs = append(recs, model.SoilRecommendation{
			Type:        "warning",
			Title:       "Low Nitrogen",
			Description: "Apply nitrogen-rich fertilizer. Consider organic options like compost or manure.",
			Priority:    "High",
		})
	}
	if sample.Phosphorus < phosphorusMin {
		recs = append(recs, model.SoilRecommendation{
			Type:        "warning",
			Title:       "Low Phosphorus",
			Description: "Apply phosphorus fertilizer. Bone meal is a good organic option.",
			Priority:    "Medium",
		})
	}
	if sample.Potassium < potassiumMin {
		recs = append(recs, model.SoilRecommendation{
			Type:        "warning",
			Title:       "Low Potassium",
			Description: "Apply potassium fertilizer. Wood ash is a natural source of potassium.",
			Priority:    "Medium",
		})
	}
	if sample.OrganicMatter != nil && *sample.OrganicMatter < organicMatterMin {
		recs = append(recs, model.SoilRecommendation{
			Type:        "info",
			Title:       "Low Organic Matter",
			Description: "Add organic matter through compost, manure, or cover crops.",
			Priority:    "Medium",
		})
	}

	if len(recs) == 0 {
		recs = append(recs, model.SoilRecommendation{
			Type:        "success",
			Title:       "Optimal Soil Conditions",
			Description: "Your soil is in excellent condition for most crops.",
			Priority:    "Low",
		})
	}

	nutrients := []model.NutrientReading{
		{Nutrient: "Nitrogen", Value: sample.Nitrogen, Optimal: nitrogenMin, Unit: "ppm"},
		{Nutrient: "Phosphorus", Value: sample.Phosphorus, Optimal: phosphorusMin, Unit: "ppm"},
		{Nutrient: "Potassium", Value: sample.Potassium, Optimal: potassiumMin, Unit: "ppm"},
	}
	if sample.OrganicMatter != nil {
		nutrients = append(nutrients, model.NutrientReading{
			Nutrient: "Organic Matter", Value: *sample.OrganicMatter, Optimal: organicMatterIdeal, Unit: "%",
		})
	}

	return model.SoilAnalysis{
		SoilType:        sample.SoilType,
		PH:              sample.PH,
		Nitrogen:        sample.Nitrogen,
		Phosphorus:      sample.Phosphorus,
		Potassium:       sample.Potassium,
		HealthScore:     soilHealthScore(sample),
		Recommendations: recs,
		Nutrients:       nutrients,
	}
}

// soilHealthScore starts at 100 and subtracts a penalty per out-of-range reading
func soilHealthScore(sample model.SoilSample) int {
	score := 100
	if sample.PH < phLow || sample.PH > phHigh {
		score -= 20
	}
	if sample.Nitrogen < nitrogenMin {
		score -= 15
	}
	if sample.Phosphorus < phosphorusMin {
		score -= 15
	}
	if sample.Potassium < potassiumMin {
		score -= 15
	}
	if sample.OrganicMatter != nil && *sample.OrganicMatter < organicMatterMin {
		score -= 10
	}
	if score < 0 {
		return 0
	}
	return score
}
