package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Interaction kinds
const (
	InteractionChat      = "chat"
	InteractionDiagnosis = "diagnosis"
)

// Interaction is an analytics record of one chat turn or diagnosis.
// Conversation context is never stored here.
type Interaction struct {
	ID             string           `json:"id" db:"id"`
	Kind           string           `json:"kind" db:"kind"`
	Query          *string          `json:"query,omitempty" db:"query"`
	Intent         *string          `json:"intent,omitempty" db:"intent"`
	Entities       JSONMap          `json:"entities,omitempty" db:"entities"`
	Crop           *string          `json:"crop,omitempty" db:"crop"`
	Symptoms       JSONArray        `json:"symptoms,omitempty" db:"symptoms"`
	TopCandidate   *string          `json:"top_candidate,omitempty" db:"top_candidate"`
	Confidence     *float64         `json:"confidence,omitempty" db:"confidence"`
	AIAssisted     bool             `json:"ai_assisted" db:"ai_assisted"`
	SymptomVector  *pgvector.Vector `json:"-" db:"symptom_vector"`
	ResponseTimeMs int              `json:"response_time_ms" db:"response_time_ms"`
	Action         *string          `json:"action,omitempty" db:"action"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

// SimilarCase is a past diagnosis whose symptom profile is close to the current one
type SimilarCase struct {
	InteractionID string    `json:"interaction_id" db:"id"`
	Crop          string    `json:"crop" db:"crop"`
	TopCandidate  string    `json:"top_candidate" db:"top_candidate"`
	Confidence    float64   `json:"confidence" db:"confidence"`
	Distance      float64   `json:"distance" db:"distance"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// JSONArray represents a JSON array column
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported JSONArray source %T", value)
	}
}

// JSONMap represents a JSON object column
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported JSONMap source %T", value)
	}
}

// EntitiesToJSONMap converts an EntityBag to a storable column value
func EntitiesToJSONMap(bag EntityBag) JSONMap {
	if len(bag) == 0 {
		return nil
	}
	out := make(JSONMap, len(bag))
	for category, terms := range bag {
		out[string(category)] = terms
	}
	return out
}
