package service

import "farmagent/internal/model"

// ChatEngine runs the classify → compose → suggest pipeline.
// It keeps no state between calls, so identical inputs give identical results.
type ChatEngine struct {
	classifier *Classifier
	composer   *ResponseComposer
}

// NewChatEngine creates a chat engine over the given classifier
func NewChatEngine(classifier *Classifier, composer *ResponseComposer) *ChatEngine {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	if composer == nil {
		composer = NewResponseComposer()
	}
	return &ChatEngine{
		classifier: classifier,
		composer:   composer,
	}
}

// ProcessChatTurn classifies message and composes the reply and suggestions.
// conv and history are read only.
func (e *ChatEngine) ProcessChatTurn(
	message string,
	conv model.ConversationContext,
	history []model.ConversationTurn,
) *model.ChatTurnResult {
	intent, entities := e.classifier.Classify(message)
	composed := e.composer.Compose(intent, entities, conv, history)

	return &model.ChatTurnResult{
		Intent:       intent,
		Entities:     entities,
		Reply:        composed.Text,
		Suggestions:  SuggestionsFor(intent),
		ContextDelta: composed.ContextDelta,
	}
}
