package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// symptomAliases maps loose wording to canonical symptom labels
var symptomAliases = map[string][]string{
	"Yellowing leaves": {"yellowing leaves", "yellow leaves", "yellowing", "leaf yellowing", "chlorosis"},
	"Brown spots":      {"brown spots", "brown spot", "leaf spots", "dark spots"},
	"Wilting":          {"wilting", "wilt", "wilted", "drooping"},
	"Powdery coating":  {"powdery coating", "powdery", "white powder", "mildew"},
	"Leaf curl":        {"leaf curl", "curling leaves", "curled leaves", "curl"},
	"Stunted growth":   {"stunted growth", "stunted", "slow growth"},
	"Rotting roots":    {"rotting roots", "root rot", "rotten roots"},
	"Holes in leaves":  {"holes in leaves", "leaf holes", "holes", "chewed leaves"},
}

// cropAliases maps regional and plural names to canonical crop names
var cropAliases = map[string][]string{
	"Maize":     {"maize", "makka", "makki"},
	"Tomato":    {"tomato", "tomatoes", "tamatar"},
	"Potato":    {"potato", "potatoes", "aloo"},
	"Onion":     {"onion", "onions", "pyaz"},
	"Rice":      {"rice", "paddy", "chawal"},
	"Wheat":     {"wheat", "gehun"},
	"Cotton":    {"cotton", "kapas"},
	"Sugarcane": {"sugarcane", "sugar cane", "ganna"},
}

var titleCaser = cases.Title(language.English)

// NormalizeSymptom maps a user-supplied label to the canonical symptom label.
// ok is false when no canonical label matches; the trimmed input is returned then.
func NormalizeSymptom(label string) (string, bool) {
	return matchAlias(label, symptomAliases)
}

// NormalizeSymptoms canonicalizes and de-duplicates labels, keeping order.
// Unrecognized labels are kept as given so callers can still report them.
func NormalizeSymptoms(labels []string) []string {
	return collectSymptoms(labels, true)
}

// KnownSymptoms is NormalizeSymptoms without the unrecognized labels
func KnownSymptoms(labels []string) []string {
	return collectSymptoms(labels, false)
}

func collectSymptoms(labels []string, keepUnknown bool) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		canonical, ok := NormalizeSymptom(label)
		if canonical == "" || seen[canonical] || (!ok && !keepUnknown) {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out
}

// NormalizeCrop maps a crop name to its canonical title-cased form
func NormalizeCrop(name string) string {
	if canonical, ok := matchAlias(name, cropAliases); ok {
		return canonical
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(trimmed))
}

// matchAlias tries an exact canonical match, then exact alias, then alias containment
func matchAlias(term string, aliases map[string][]string) (string, bool) {
	trimmed := strings.TrimSpace(term)
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return "", false
	}

	for canonical := range aliases {
		if strings.EqualFold(canonical, trimmed) {
			return canonical, true
		}
	}

	for canonical, values := range aliases {
		for _, alias := range values {
			if lower == alias {
				return canonical, true
			}
		}
	}

	// Longest alias wins so "leaf curl" beats "curl" and stays deterministic
	best, bestLen := "", 0
	for canonical, values := range aliases {
		for _, alias := range values {
			if strings.Contains(lower, alias) && (len(alias) > bestLen || (len(alias) == bestLen && canonical < best)) {
				best, bestLen = canonical, len(alias)
			}
		}
	}
	if best != "" {
		return best, true
	}

	return trimmed, false
}
