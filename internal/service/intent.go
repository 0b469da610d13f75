package service

import (
	"strings"

	"farmagent/internal/model"
)

// Classifier maps free text to an intent and a bag of entities by substring matching.
// It holds only the immutable lexicon and is safe for concurrent use.
type Classifier struct {
	lexicon *Lexicon
}

// NewClassifier creates a classifier; a nil lexicon selects DefaultLexicon
func NewClassifier(lexicon *Lexicon) *Classifier {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Classifier{
		lexicon: lexicon,
	}
}

// Classify returns the intent and entities found in text.
// Matching is plain substring containment on the lower-cased input:
// no tokenization, so "rainbow" still triggers the "rain" keyword.
func (c *Classifier) Classify(text string) (model.Intent, model.EntityBag) {
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return model.IntentGeneral, model.EntityBag{}
	}
	return c.intentOf(normalized), c.entitiesOf(normalized)
}

// intentOf walks intents in priority order and stops at the first hit
func (c *Classifier) intentOf(normalized string) model.Intent {
	for _, group := range c.lexicon.Intents {
		if containsAny(normalized, group.Keywords) {
			return group.Category
		}
	}
	return model.IntentGeneral
}

// entitiesOf collects every vocabulary term present, independent of the intent
func (c *Classifier) entitiesOf(normalized string) model.EntityBag {
	bag := model.EntityBag{}
	for _, group := range c.lexicon.Entities {
		var found []string
		for _, term := range group.Keywords {
			if strings.Contains(normalized, term) {
				found = append(found, term)
			}
		}
		if len(found) > 0 {
			bag[group.Category] = found
		}
	}
	return bag
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
