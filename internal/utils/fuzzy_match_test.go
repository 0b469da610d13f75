package utils

import (
	"testing"
)

func TestNormalizeSymptom(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"Yellowing leaves", "Yellowing leaves", true},
		{"yellowing LEAVES", "Yellowing leaves", true},
		{"  yellow leaves ", "Yellowing leaves", true},
		{"root rot", "Rotting roots", true},
		{"severe leaf curl on new shoots", "Leaf curl", true},
		{"white powder", "Powdery coating", true},
		{"holes in leaves", "Holes in leaves", true},
		{"sunburn", "sunburn", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeSymptom(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeSymptom(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeSymptoms(t *testing.T) {
	got := NormalizeSymptoms([]string{"brown spot", "Brown spots", "", "yellowing", "mystery"})
	want := []string{"Brown spots", "Yellowing leaves", "mystery"}

	if len(got) != len(want) {
		t.Fatalf("NormalizeSymptoms() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeSymptoms()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKnownSymptoms(t *testing.T) {
	got := KnownSymptoms([]string{"curl", "Sunscald", "Leaf curl", "yellow leaves", "mystery"})
	want := []string{"Leaf curl", "Yellowing leaves"}

	if len(got) != len(want) {
		t.Fatalf("KnownSymptoms() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KnownSymptoms()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if empty := KnownSymptoms([]string{}); empty == nil || len(empty) != 0 {
		t.Errorf("KnownSymptoms([]) = %#v, want empty non-nil slice", empty)
	}
}

func TestNormalizeCrop(t *testing.T) {
	tests := map[string]string{
		"tomato":      "Tomato",
		"Tomatoes":    "Tomato",
		"tamatar":     "Tomato",
		"paddy":       "Rice",
		"WHEAT":       "Wheat",
		"sugar cane":  "Sugarcane",
		"dragonfruit": "Dragonfruit",
		"":            "",
	}

	for input, want := range tests {
		if got := NormalizeCrop(input); got != want {
			t.Errorf("NormalizeCrop(%q) = %q, want %q", input, got, want)
		}
	}
}
