package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cropAnswer struct {
	CropType   string   `json:"crop_type"`
	Symptoms   []string `json:"symptoms"`
	Confidence float64  `json:"confidence"`
}

func TestDecodeLooseJSON(t *testing.T) {
	want := cropAnswer{CropType: "Tomato", Symptoms: []string{"Leaf curl"}, Confidence: 0.8}

	tests := []struct {
		name  string
		input string
	}{
		{"bare", `{"crop_type":"Tomato","symptoms":["Leaf curl"],"confidence":0.8}`},
		{"fenced json", "```json\n{\"crop_type\":\"Tomato\",\"symptoms\":[\"Leaf curl\"],\"confidence\":0.8}\n```"},
		{"fenced plain", "```\n{\"crop_type\":\"Tomato\",\"symptoms\":[\"Leaf curl\"],\"confidence\":0.8}\n```"},
		{"prose around object", `Here is my analysis: {"crop_type":"Tomato","symptoms":["Leaf curl"],"confidence":0.8} Hope this helps.`},
		{"trailing comma", `{"crop_type":"Tomato","symptoms":["Leaf curl",],"confidence":0.8,}`},
		{"unquoted keys", `{crop_type: "Tomato", symptoms: ["Leaf curl"], confidence: 0.8}`},
		{"byte order mark", "\ufeff{\"crop_type\":\"Tomato\",\"symptoms\":[\"Leaf curl\"],\"confidence\":0.8}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got cropAnswer
			require.NoError(t, DecodeLooseJSON(tt.input, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeLooseJSON_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "no json here", `{"crop_type": "Tomato"`} {
		var got cropAnswer
		err := DecodeLooseJSON(input, &got)
		assert.ErrorIs(t, err, ErrNoJSON, "input %q", input)
	}
}

func TestBalancedObject(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`x {"a":1} y`, `{"a":1}`},
		{`{"a":{"b":2}} {"c":3}`, `{"a":{"b":2}}`},
		{`{"a":"}{"}`, `{"a":"}{"}`},
		{`{"a":"\"}"}`, `{"a":"\"}"}`},
		{`{"unterminated": 1`, ""},
		{"nothing", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, balancedObject(tt.input), "input %q", tt.input)
	}
}

func TestPreview(t *testing.T) {
	short := "short"
	assert.Equal(t, short, preview(short))

	long := string(bytes.Repeat([]byte("a"), maxErrorPreview+10))
	got := preview(long)
	assert.Len(t, got, maxErrorPreview+3)
	assert.Equal(t, "...", got[len(got)-3:])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]any{"crop": "Rice"}))
	assert.Equal(t, "{\n  \"crop\": \"Rice\"\n}\n", buf.String())
}
