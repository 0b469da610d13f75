package model

import (
	"strings"
	"time"
)

// Severity grades how urgent a diagnosed issue is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Symptom labels accepted by the diagnosis engine
const (
	SymptomYellowingLeaves = "Yellowing leaves"
	SymptomBrownSpots      = "Brown spots"
	SymptomWilting         = "Wilting"
	SymptomPowderyCoating  = "Powdery coating"
	SymptomLeafCurl        = "Leaf curl"
	SymptomStuntedGrowth   = "Stunted growth"
	SymptomRottingRoots    = "Rotting roots"
	SymptomHolesInLeaves   = "Holes in leaves"
)

// SymptomVocabulary is the closed set of symptom labels, in display order.
// Labels without a rule are accepted and ignored.
var SymptomVocabulary = []string{
	SymptomYellowingLeaves,
	SymptomBrownSpots,
	SymptomWilting,
	SymptomPowderyCoating,
	SymptomLeafCurl,
	SymptomStuntedGrowth,
	SymptomRottingRoots,
	SymptomHolesInLeaves,
}

// DiagnosisCandidate is one ranked hypothesis about a crop ailment
type DiagnosisCandidate struct {
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"`
	Solutions  []string `json:"solutions"`
	Prevention []string `json:"prevention"`
	Severity   Severity `json:"severity"`
	AIAssisted bool     `json:"ai_assisted"`
}

// ExternalAnalysis is a crop/symptom detection produced outside the rule engine,
// typically by the image analyzer
type ExternalAnalysis struct {
	CropType         string    `json:"crop_type"`
	DetectedSymptoms []string  `json:"detected_symptoms"`
	Confidence       float64   `json:"confidence"`
	AIProcessed      bool      `json:"ai_processed"`
	ImageSize        int64     `json:"image_size,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Usable reports whether the analysis is present and well formed.
// Missing fields (nil, blank crop, nil symptom list) make it absent. An empty
// but non-nil symptom list means nothing was detected and still overrides.
func (a *ExternalAnalysis) Usable() bool {
	if a == nil {
		return false
	}
	if strings.TrimSpace(a.CropType) == "" || a.DetectedSymptoms == nil {
		return false
	}
	return a.Confidence >= 0 && a.Confidence <= 1
}
