package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when no candidate in the input decodes into the target
var ErrNoJSON = errors.New("no decodable JSON found")

var (
	fencedBlock   = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.+?)\\s*```")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	bareKey       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

const maxErrorPreview = 80

// DecodeLooseJSON decodes model output into target. The output may be bare JSON,
// a fenced code block, an object embedded in prose, or JSON with trailing
// commas and unquoted keys. Candidates are tried in that order.
func DecodeLooseJSON(input string, target any) error {
	input = strings.TrimSpace(strings.TrimPrefix(input, "\ufeff"))
	if input == "" {
		return fmt.Errorf("%w: empty input", ErrNoJSON)
	}

	for _, candidate := range jsonCandidates(input) {
		if json.Unmarshal([]byte(candidate), target) == nil {
			return nil
		}
	}

	return fmt.Errorf("%w in %q", ErrNoJSON, preview(input))
}

func jsonCandidates(input string) []string {
	candidates := []string{input}
	if m := fencedBlock.FindStringSubmatch(input); len(m) > 1 {
		candidates = append(candidates, m[1])
	}
	if obj := balancedObject(input); obj != "" {
		candidates = append(candidates, obj)
		candidates = append(candidates, repairJSON(obj))
	}
	return append(candidates, repairJSON(input))
}

// balancedObject returns the first brace-balanced {...} span, ignoring braces in strings
func balancedObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(input); i++ {
		ch := input[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

func repairJSON(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = bareKey.ReplaceAllString(s, `$1"$2"$3`)
	return controlChars.ReplaceAllString(s, "")
}

func preview(s string) string {
	if len(s) <= maxErrorPreview {
		return s
	}
	return s[:maxErrorPreview] + "..."
}

// WriteJSON writes v to w as indented JSON followed by a newline
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
