package service

import (
	"math"
	"sort"
	"strings"

	"farmagent/internal/model"

	"github.com/pgvector/pgvector-go"
)

// Candidate name constants
const (
	CandidateNitrogenDeficiency = "Nitrogen Deficiency"
	CandidateLeafSpot           = "Leaf Spot (Fungal)"
	CandidatePowderyMildew      = "Powdery Mildew"
	CandidateViralLeafCurl      = "Viral Leaf Curl (vector: whiteflies)"
	CandidateNoStrongMatch      = "No strong match"
)

const (
	maxConfidence      = 0.95
	fallbackConfidence = 0.3
	cropBoost          = 0.1
	cropBoostTarget    = "Tomato"
)

// diagnosisRule maps one symptom to one candidate issue
type diagnosisRule struct {
	symptom    string
	name       string
	base       float64
	aiBoost    float64
	severity   model.Severity
	solutions  []string
	prevention []string
}

// diagnosisRules are evaluated in order; the order is the tie-break when sorting
var diagnosisRules = []diagnosisRule{
	{
		symptom:  model.SymptomYellowingLeaves,
		name:     CandidateNitrogenDeficiency,
		base:     0.72,
		aiBoost:  0.15,
		severity: model.SeverityMedium,
		solutions: []string{
			"Apply nitrogen-rich fertilizer (e.g., urea) as per soil test",
			"Use compost/manure for organic nitrogen",
			"Avoid overwatering to reduce leaching",
		},
		prevention: []string{
			"Regular soil testing and balanced fertilization",
			"Incorporate green manure or legumes in rotation",
		},
	},
	{
		symptom:  model.SymptomBrownSpots,
		name:     CandidateLeafSpot,
		base:     0.68,
		aiBoost:  0.15,
		severity: model.SeverityMedium,
		solutions: []string{
			"Remove and destroy infected leaves",
			"Apply copper-based or azoxystrobin fungicide",
			"Improve air circulation, avoid wet foliage at night",
		},
		prevention: []string{
			"Use disease-resistant varieties",
			"Practice crop rotation and sanitation",
		},
	},
	{
		symptom:  model.SymptomPowderyCoating,
		name:     CandidatePowderyMildew,
		base:     0.8,
		aiBoost:  0.1,
		severity: model.SeverityHigh,
		solutions: []string{
			"Apply sulfur or potassium bicarbonate spray",
			"Ensure good spacing and sunlight",
		},
		prevention: []string{
			"Avoid excessive nitrogen",
			"Remove volunteer hosts",
		},
	},
	{
		symptom:  model.SymptomLeafCurl,
		name:     CandidateViralLeafCurl,
		base:     0.64,
		aiBoost:  0.15,
		severity: model.SeverityHigh,
		solutions: []string{
			"Manage whiteflies with yellow sticky traps and neem oil",
			"Remove severely infected plants",
		},
		prevention: []string{
			"Use virus-free seedlings",
			"Install insect-proof nets",
		},
	},
}

// DiagnosisEngine ranks likely crop issues from observed symptoms
type DiagnosisEngine struct {
	rules []diagnosisRule
}

// NewDiagnosisEngine creates a diagnosis engine with the built-in rule table
func NewDiagnosisEngine() *DiagnosisEngine {
	return &DiagnosisEngine{
		rules: diagnosisRules,
	}
}

// Diagnose returns candidates sorted by descending confidence. The list is
// never empty: when no rule fires a single low-confidence fallback is returned.
// A usable external analysis replaces crop and symptoms and boosts confidence.
func (e *DiagnosisEngine) Diagnose(crop string, symptoms []string, external *model.ExternalAnalysis) []model.DiagnosisCandidate {
	assisted := external.Usable()
	if assisted {
		crop = external.CropType
		symptoms = external.DetectedSymptoms
	}

	present := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		present[s] = true
	}

	candidates := make([]model.DiagnosisCandidate, 0, len(e.rules))
	for _, rule := range e.rules {
		if !present[rule.symptom] {
			continue
		}
		confidence := rule.base
		if assisted {
			confidence = capConfidence(rule.base + rule.aiBoost)
		}
		candidates = append(candidates, model.DiagnosisCandidate{
			Name:       rule.name,
			Confidence: confidence,
			Solutions:  append([]string(nil), rule.solutions...),
			Prevention: append([]string(nil), rule.prevention...),
			Severity:   rule.severity,
			AIAssisted: assisted,
		})
	}

	if len(candidates) == 0 {
		candidates = append(candidates, fallbackCandidate())
	}

	e.applyCropWeighting(crop, candidates)

	// Sort by confidence descending; rule order breaks ties
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	return candidates
}

// applyCropWeighting boosts issues a crop is known to be prone to
func (e *DiagnosisEngine) applyCropWeighting(crop string, candidates []model.DiagnosisCandidate) {
	if !strings.EqualFold(strings.TrimSpace(crop), cropBoostTarget) {
		return
	}
	for i := range candidates {
		name := strings.ToLower(candidates[i].Name)
		if strings.Contains(name, "curl") || strings.Contains(name, "powdery") {
			candidates[i].Confidence = capConfidence(candidates[i].Confidence + cropBoost)
		}
	}
}

func fallbackCandidate() model.DiagnosisCandidate {
	return model.DiagnosisCandidate{
		Name:       CandidateNoStrongMatch,
		Confidence: fallbackConfidence,
		Solutions:  []string{"Collect more details or upload a clear photo for better results"},
		Prevention: []string{"Monitor regularly and record symptom progression"},
		Severity:   model.SeverityLow,
		AIAssisted: false,
	}
}

// capConfidence clamps to [0, maxConfidence] and rounds away float noise
func capConfidence(v float64) float64 {
	v = math.Round(v*1000) / 1000
	if v > maxConfidence {
		return maxConfidence
	}
	if v < 0 {
		return 0
	}
	return v
}

// SymptomVector encodes a symptom set as a 0/1 vector over SymptomVocabulary.
// Used to find past diagnoses with a similar symptom profile.
func SymptomVector(symptoms []string) pgvector.Vector {
	present := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		present[s] = true
	}
	vec := make([]float32, len(model.SymptomVocabulary))
	for i, label := range model.SymptomVocabulary {
		if present[label] {
			vec[i] = 1
		}
	}
	return pgvector.NewVector(vec)
}
