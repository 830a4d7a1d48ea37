package interpreter

import (
	"encoding/json"
	"fmt"
	"strings"
)

type generatedInterpretation struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	GrowthAreas []string `json:"growth_areas"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse parses and validates the model's JSON output. Models
// sometimes wrap JSON in code fences despite instructions, so fences are
// stripped first.
func ParseResponse(responseBody string) (*generatedInterpretation, error) {
	cleaned := stripCodeFences(responseBody)

	var gen generatedInterpretation
	if err := json.Unmarshal([]byte(cleaned), &gen); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validate(&gen); err != nil {
		return nil, err
	}
	return &gen, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validate(gen *generatedInterpretation) error {
	var errs []string

	if strings.TrimSpace(gen.Summary) == "" {
		errs = append(errs, "empty summary")
	}
	if len(gen.Strengths) == 0 {
		errs = append(errs, "no strengths")
	}
	if len(gen.GrowthAreas) == 0 {
		errs = append(errs, "no growth areas")
	}
	for i, s := range gen.Strengths {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("strength %d is empty", i+1))
		}
	}
	for i, s := range gen.GrowthAreas {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("growth area %d is empty", i+1))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
