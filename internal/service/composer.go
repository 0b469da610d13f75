package service

import (
	"fmt"

	"farmagent/internal/model"
)

// Composition is the composer output: reply text plus an optional context proposal
type Composition struct {
	Text         string
	ContextDelta *model.ContextDelta
}

// templateInput is what each intent template may branch on
type templateInput struct {
	entities model.EntityBag
	context  model.ConversationContext
	history  []model.ConversationTurn
}

type templateFunc func(in templateInput) string

const generalReply = "I'm your comprehensive farming assistant! I can help with crop planning, pest control, soil management, weather monitoring, irrigation, market strategies, and much more. What aspect of farming would you like to focus on today?"

// replyTemplates has an entry for every intent; lookups for anything else use general
var replyTemplates = map[model.Intent]templateFunc{
	model.IntentWeather: func(in templateInput) string {
		if in.context.HasLocation() {
			return fmt.Sprintf("I can help you with weather information for %s. I recommend checking the forecast regularly and adjusting your farming practices accordingly. Would you like me to get the current weather data for your region?", *in.context.Location)
		}
		return "I can help you with weather-related farming advice. To provide accurate weather information, could you tell me your location? I can then give you specific forecasts and recommendations."
	},
	model.IntentPest: func(in templateInput) string {
		if crop, ok := in.entities.First(model.EntityCrops); ok {
			return fmt.Sprintf("For %s pest control, I recommend an integrated approach: 1) Regular monitoring and early detection, 2) Use beneficial insects like ladybugs, 3) Apply organic treatments like neem oil or insecticidal soap, 4) Practice crop rotation. What specific pests are you seeing on your %s?", crop, crop)
		}
		return "I can help with comprehensive pest control strategies. What crops are you growing and what pests or diseases are you dealing with? I'll provide specific solutions based on your situation."
	},
	model.IntentSoil: func(in templateInput) string {
		if in.context.HasSoilType() {
			return fmt.Sprintf("For your %s soil, I recommend regular testing every 3-6 months, adding organic matter like compost, and maintaining proper pH levels. What specific soil issues are you facing?", *in.context.SoilType)
		}
		return "Soil health is the foundation of successful farming. I can help with soil testing, amendments, fertility management, and organic improvements. What's your current soil situation and what are you trying to achieve?"
	},
	model.IntentCrop: func(in templateInput) string {
		if crop, ok := in.entities.First(model.EntityCrops); ok {
			return fmt.Sprintf("Excellent choice with %s! I can provide specific advice on planting timing, spacing, care requirements, and harvesting. What stage is your %s at currently, and what specific guidance do you need?", crop, crop)
		}
		return "I can help you choose the right crops for your conditions and provide comprehensive growing advice. What are you planning to grow, and what's your farming environment like?"
	},
	model.IntentIrrigation: func(in templateInput) string {
		if place, ok := in.entities.First(model.EntityLocations); ok {
			return fmt.Sprintf("Efficient irrigation is crucial for water conservation and optimal plant health. For your %s I can help you choose the right irrigation system (drip, sprinkler, or flood), create watering schedules, and optimize water usage. What's your current irrigation setup and what challenges are you facing?", place)
		}
		return "Efficient irrigation is crucial for water conservation and optimal plant health. I can help you choose the right irrigation system (drip, sprinkler, or flood), create watering schedules, and optimize water usage. What's your current irrigation setup and what challenges are you facing?"
	},
	model.IntentMarket: func(in templateInput) string {
		if crop, ok := in.entities.First(model.EntityCrops); ok {
			return fmt.Sprintf("I can help with Indian market analysis for %s, APMC pricing strategies, and selling tips. I'll share the current %s price from the reference market and suggest the best time to sell so you can maximize profits.", crop, crop)
		}
		return "I can help with Indian market analysis, APMC pricing strategies, and selling tips. I can provide current market prices from major Indian markets like Mumbai APMC, Delhi Azadpur, and others. I can suggest the best times to sell and help you maximize profits in the Indian agricultural market. What crops are you looking to sell?"
	},
	model.IntentAdvice: func(in templateInput) string {
		if crop, ok := in.entities.First(model.EntityCrops); ok {
			return fmt.Sprintf("Happy to help with your %s. For the best advice, tell me its growth stage, your soil conditions, and any symptoms you've noticed, and I'll give you personalized recommendations.", crop)
		}
		return "I understand your question about farming. For the best advice, please provide more specific details about your crop type, soil conditions, or the specific issue you're facing. I'm here to help with personalized recommendations!"
	},
	model.IntentGeneral: func(templateInput) string {
		return generalReply
	},
}

// ResponseComposer turns a classified message into reply text.
// It performs no I/O and never mutates the context it is given.
type ResponseComposer struct{}

// NewResponseComposer creates a new response composer
func NewResponseComposer() *ResponseComposer {
	return &ResponseComposer{}
}

// Compose picks the template for intent and fills it from entities and context.
// ContextDelta is set exactly when crop entities were found.
func (c *ResponseComposer) Compose(
	intent model.Intent,
	entities model.EntityBag,
	conv model.ConversationContext,
	history []model.ConversationTurn,
) Composition {
	tmpl, ok := replyTemplates[intent]
	if !ok {
		tmpl = replyTemplates[model.IntentGeneral]
	}

	out := Composition{
		Text: tmpl(templateInput{entities: entities, context: conv, history: history}),
	}
	if crops := entities[model.EntityCrops]; len(crops) > 0 {
		out.ContextDelta = &model.ContextDelta{Crops: append([]string(nil), crops...)}
	}
	return out
}
