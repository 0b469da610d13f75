package service

import (
	"strings"
	"testing"

	"farmagent/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name       string
		input      string
		wantIntent model.Intent
		wantBag    model.EntityBag
	}{
		{
			name:       "weather with timeframe",
			input:      "Will it rain tomorrow?",
			wantIntent: model.IntentWeather,
			wantBag:    model.EntityBag{model.EntityTimeframes: {"tomorrow"}},
		},
		{
			name:       "symptoms without intent keyword",
			input:      "My tomato leaves have brown spots",
			wantIntent: model.IntentGeneral,
			wantBag: model.EntityBag{
				model.EntityCrops:    {"tomato"},
				model.EntityProblems: {"brown", "spots"},
			},
		},
		{
			name:       "irrigation outranks advice",
			input:      "How should I water my wheat?",
			wantIntent: model.IntentIrrigation,
			wantBag:    model.EntityBag{model.EntityCrops: {"wheat"}},
		},
		{
			name:       "weather outranks pest",
			input:      "aphids everywhere after the storm",
			wantIntent: model.IntentWeather,
			wantBag:    model.EntityBag{},
		},
		{
			name:       "pest outranks advice",
			input:      "help, what pests are attacking my crop",
			wantIntent: model.IntentPest,
			wantBag:    model.EntityBag{},
		},
		{
			name:       "entities independent of intent",
			input:      "How do I grow tomato in rainy weather",
			wantIntent: model.IntentWeather,
			wantBag:    model.EntityBag{model.EntityCrops: {"tomato"}},
		},
		{
			name:       "market",
			input:      "Where can I sell my COTTON?",
			wantIntent: model.IntentMarket,
			wantBag:    model.EntityBag{model.EntityCrops: {"cotton"}},
		},
		{
			name:       "substring match inside longer word",
			input:      "a rainbow over the farm",
			wantIntent: model.IntentWeather,
			wantBag:    model.EntityBag{model.EntityLocations: {"farm"}},
		},
		{
			name:       "crop vocabulary order with embedded term",
			input:      "onion price",
			wantIntent: model.IntentMarket,
			wantBag:    model.EntityBag{model.EntityCrops: {"rice", "onion"}},
		},
		{
			name:       "empty",
			input:      "",
			wantIntent: model.IntentGeneral,
			wantBag:    model.EntityBag{},
		},
		{
			name:       "whitespace only",
			input:      "   \t ",
			wantIntent: model.IntentGeneral,
			wantBag:    model.EntityBag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, bag := c.Classify(tt.input)
			assert.Equal(t, tt.wantIntent, intent)
			assert.Equal(t, tt.wantBag, bag)
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	c := NewClassifier(nil)

	for _, input := range []string{"Pest problem in my Garden", "my tomato is INFECTED", "harvest time for Maize"} {
		lowerIntent, lowerBag := c.Classify(input)
		upperIntent, upperBag := c.Classify(strings.ToUpper(input))
		assert.Equal(t, lowerIntent, upperIntent, input)
		assert.Equal(t, lowerBag, upperBag, input)
	}
}

func TestClassifyNeverReturnsEmptyCategories(t *testing.T) {
	c := NewClassifier(nil)

	inputs := []string{"hello", "soil in my plot this week", "sick brinjal and dying chili", "xyz"}
	for _, input := range inputs {
		intent, bag := c.Classify(input)
		assert.True(t, intent.Valid(), input)
		for category, terms := range bag {
			assert.NotEmpty(t, terms, "%q: category %s", input, category)
		}
	}
}

func TestClassifierCustomLexicon(t *testing.T) {
	lex := &Lexicon{
		Intents: []keywordGroup[model.Intent]{
			{model.IntentMarket, []string{"mandi"}},
		},
		Entities: []keywordGroup[model.EntityCategory]{
			{model.EntityCrops, []string{"ragi"}},
		},
	}
	c := NewClassifier(lex)

	intent, bag := c.Classify("ragi rates at the mandi")
	assert.Equal(t, model.IntentMarket, intent)
	assert.Equal(t, []string{"ragi"}, bag[model.EntityCrops])
	assert.Equal(t, []string{"ragi"}, lex.KnownCrops())
}
