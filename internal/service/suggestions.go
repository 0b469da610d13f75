package service

import "farmagent/internal/model"

var suggestionTable = map[model.Intent][]string{
	model.IntentWeather:    {"Check weather forecast", "Weather impact on crops", "Seasonal planning", "Storm preparation"},
	model.IntentPest:       {"Natural pest control", "Pest identification", "Prevention strategies", "Organic treatments"},
	model.IntentSoil:       {"Soil testing", "Organic amendments", "Fertilizer recommendations", "pH adjustment"},
	model.IntentCrop:       {"Planting schedule", "Crop care tips", "Harvest timing", "Variety selection"},
	model.IntentIrrigation: {"Water efficiency", "Irrigation systems", "Watering schedule", "Drip irrigation setup"},
	model.IntentMarket:     {"Indian market prices", "APMC selling strategies", "Profit optimization", "Best selling time", "MSP rates"},
	model.IntentAdvice:     {"How to control pests naturally?", "Best fertilizer for my crops?", "When should I harvest?", "How to improve soil health?"},
	model.IntentGeneral:    {"Weather check", "Pest control help", "Soil health tips", "Crop advice", "Market analysis"},
}

// SuggestionsFor returns the follow-up prompts for intent.
// Unknown intents get the general list. The result is a fresh copy.
func SuggestionsFor(intent model.Intent) []string {
	list, ok := suggestionTable[intent]
	if !ok {
		list = suggestionTable[model.IntentGeneral]
	}
	return append([]string(nil), list...)
}
