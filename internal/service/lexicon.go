package service

import "farmagent/internal/model"

// keywordGroup pairs a category with its triggers, in match order
type keywordGroup[K comparable] struct {
	Category K
	Keywords []string
}

// Lexicon holds the keyword tables used by the Classifier
type Lexicon struct {
	Intents  []keywordGroup[model.Intent]
	Entities []keywordGroup[model.EntityCategory]
}

// intentPriority is the order intents are tried in. The first match wins,
// so moving an entry changes classification results.
var intentPriority = []keywordGroup[model.Intent]{
	{model.IntentWeather, []string{"weather", "rain", "temperature", "forecast", "climate", "storm"}},
	{model.IntentPest, []string{"pest", "insect", "bug", "aphid", "caterpillar", "disease", "infected"}},
	{model.IntentSoil, []string{"soil", "fertilizer", "nutrient", "ph", "compost", "dirt"}},
	{model.IntentCrop, []string{"plant", "seed", "harvest", "crop", "variety", "grow"}},
	{model.IntentIrrigation, []string{"water", "irrigation", "drip", "sprinkler", "watering"}},
	{model.IntentMarket, []string{"price", "market", "sell", "profit", "cost", "revenue"}},
	{model.IntentAdvice, []string{"how", "what", "when", "where", "why", "help", "advice"}},
}

var entityVocabulary = []keywordGroup[model.EntityCategory]{
	{model.EntityCrops, []string{
		"tomato", "wheat", "rice", "corn", "potato", "onion", "cotton", "sugarcane", "maize",
		"brinjal", "cabbage", "cauliflower", "bajra", "jowar", "dal", "chana", "moong", "urad",
		"turmeric", "coriander", "cumin", "chili", "mango", "banana", "apple", "orange", "tobacco",
	}},
	{model.EntityLocations, []string{"field", "farm", "garden", "greenhouse", "plot"}},
	{model.EntityTimeframes, []string{"today", "tomorrow", "week", "month", "season", "spring", "summer", "fall", "winter"}},
	{model.EntityProblems, []string{"yellow", "brown", "spots", "wilting", "dying", "sick", "rot", "mold"}},
}

// DefaultLexicon returns the built-in keyword tables
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Intents:  intentPriority,
		Entities: entityVocabulary,
	}
}

// KnownCrops returns the crop vocabulary
func (l *Lexicon) KnownCrops() []string {
	for _, group := range l.Entities {
		if group.Category == model.EntityCrops {
			return append([]string(nil), group.Keywords...)
		}
	}
	return nil
}
