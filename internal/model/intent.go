package model

// Intent is the coarse topic assigned to a free-text query
type Intent string

const (
	IntentWeather    Intent = "weather"
	IntentPest       Intent = "pest"
	IntentSoil       Intent = "soil"
	IntentCrop       Intent = "crop"
	IntentIrrigation Intent = "irrigation"
	IntentMarket     Intent = "market"
	IntentAdvice     Intent = "advice"
	IntentGeneral    Intent = "general"
)

// AllIntents lists every intent, general last
var AllIntents = []Intent{
	IntentWeather,
	IntentPest,
	IntentSoil,
	IntentCrop,
	IntentIrrigation,
	IntentMarket,
	IntentAdvice,
	IntentGeneral,
}

// Valid reports whether i is one of the known intents
func (i Intent) Valid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}

// EntityCategory names a kind of recognized term
type EntityCategory string

const (
	EntityCrops      EntityCategory = "crops"
	EntityLocations  EntityCategory = "locations"
	EntityTimeframes EntityCategory = "timeframes"
	EntityProblems   EntityCategory = "problems"
)

// EntityBag maps a category to the terms found in the input.
// A missing category means no match; categories are never present with an empty list.
type EntityBag map[EntityCategory][]string

// First returns the first matched term of a category
func (b EntityBag) First(category EntityCategory) (string, bool) {
	terms := b[category]
	if len(terms) == 0 {
		return "", false
	}
	return terms[0], true
}

// Has reports whether the category matched at all
func (b EntityBag) Has(category EntityCategory) bool {
	return len(b[category]) > 0
}

// ChatTurnResult is the output of one pass through the chat pipeline
type ChatTurnResult struct {
	Intent       Intent        `json:"intent"`
	Entities     EntityBag     `json:"entities"`
	Reply        string        `json:"reply"`
	Suggestions  []string      `json:"suggestions"`
	ContextDelta *ContextDelta `json:"context_delta,omitempty"`
}
