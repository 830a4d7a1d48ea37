package interpreter

import (
	"strings"
	"testing"
)

const validResponse = `{
  "summary": "A balanced profile with strong reasoning.",
  "strengths": ["Works through multi-step problems", "Explores careers actively"],
  "growth_areas": ["Study consistency"]
}`

func TestParseResponseValid(t *testing.T) {
	gen, err := ParseResponse(validResponse)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if gen.Summary == "" {
		t.Error("summary should not be empty")
	}
	if len(gen.Strengths) != 2 {
		t.Errorf("got %d strengths, want 2", len(gen.Strengths))
	}
	if len(gen.GrowthAreas) != 1 {
		t.Errorf("got %d growth areas, want 1", len(gen.GrowthAreas))
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	fenced := []string{
		"```json\n" + validResponse + "\n```",
		"```\n" + validResponse + "\n```",
		"  " + validResponse + "  ",
	}
	for _, input := range fenced {
		if _, err := ParseResponse(input); err != nil {
			t.Errorf("ParseResponse failed on fenced input: %v", err)
		}
	}
}

func TestParseResponseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "I think the student is doing well."},
		{"empty summary", `{"summary":"","strengths":["a"],"growth_areas":["b"]}`},
		{"no strengths", `{"summary":"ok","strengths":[],"growth_areas":["b"]}`},
		{"no growth areas", `{"summary":"ok","strengths":["a"],"growth_areas":[]}`},
		{"blank strength", `{"summary":"ok","strengths":["  "],"growth_areas":["b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseResponse(tt.input); err == nil {
				t.Errorf("ParseResponse accepted invalid input %q", tt.input)
			}
		})
	}
}

func TestMockClientOutputParses(t *testing.T) {
	gen, err := ParseResponse(mockInterpretationJSON)
	if err != nil {
		t.Fatalf("mock client output does not parse: %v", err)
	}
	if !strings.Contains(gen.Summary, "[Mock]") {
		t.Error("mock summary should be marked as mock data")
	}
}
