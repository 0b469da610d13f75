package model

import (
	"strings"
	"time"
)

// DefaultHistoryLimit is the number of recent turns handed to the composer
const DefaultHistoryLimit = 5

// ConversationContext is the caller-owned record the assistant reads from.
// The chat pipeline never mutates it; it proposes a ContextDelta instead.
type ConversationContext struct {
	Location         *string    `json:"location,omitempty"`
	KnownCrops       []string   `json:"known_crops,omitempty"`
	SoilType         *string    `json:"soil_type,omitempty"`
	LastWeatherCheck *time.Time `json:"last_weather_check,omitempty"`
}

// ContextDelta proposes crops to append to KnownCrops.
// Crops may repeat names already known; Merge drops duplicates.
type ContextDelta struct {
	Crops []string `json:"crops"`
}

// Merge returns a copy of c with the delta applied. KnownCrops stays
// duplicate free (case-insensitive) and keeps first-seen order.
func (c ConversationContext) Merge(delta *ContextDelta) ConversationContext {
	merged := c.Clone()
	if delta == nil {
		return merged
	}

	seen := make(map[string]bool, len(merged.KnownCrops)+len(delta.Crops))
	crops := make([]string, 0, len(merged.KnownCrops)+len(delta.Crops))
	for _, crop := range append(append([]string{}, merged.KnownCrops...), delta.Crops...) {
		key := strings.ToLower(strings.TrimSpace(crop))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		crops = append(crops, crop)
	}
	merged.KnownCrops = crops
	return merged
}

// Overlay returns a copy of c where every field set in other wins
func (c ConversationContext) Overlay(other ConversationContext) ConversationContext {
	merged := c.Clone()
	if other.Location != nil {
		merged.Location = stringPtr(*other.Location)
	}
	if other.SoilType != nil {
		merged.SoilType = stringPtr(*other.SoilType)
	}
	if other.LastWeatherCheck != nil {
		t := *other.LastWeatherCheck
		merged.LastWeatherCheck = &t
	}
	if len(other.KnownCrops) > 0 {
		merged = merged.Merge(&ContextDelta{Crops: other.KnownCrops})
	}
	return merged
}

// Clone deep-copies the context
func (c ConversationContext) Clone() ConversationContext {
	out := ConversationContext{}
	if c.Location != nil {
		out.Location = stringPtr(*c.Location)
	}
	if c.SoilType != nil {
		out.SoilType = stringPtr(*c.SoilType)
	}
	if c.LastWeatherCheck != nil {
		t := *c.LastWeatherCheck
		out.LastWeatherCheck = &t
	}
	if c.KnownCrops != nil {
		out.KnownCrops = append([]string(nil), c.KnownCrops...)
	}
	return out
}

// HasLocation reports whether a non-blank location is known
func (c ConversationContext) HasLocation() bool {
	return c.Location != nil && strings.TrimSpace(*c.Location) != ""
}

// HasSoilType reports whether a non-blank soil type is known
func (c ConversationContext) HasSoilType() bool {
	return c.SoilType != nil && strings.TrimSpace(*c.SoilType) != ""
}

// Speaker identifies who produced a conversation turn
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ConversationTurn is one prior message in the conversation
type ConversationTurn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// RecentTurns returns the last limit turns of history without copying the rest
func RecentTurns(history []ConversationTurn, limit int) []ConversationTurn {
	if limit <= 0 {
		return nil
	}
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

func stringPtr(s string) *string {
	return &s
}
