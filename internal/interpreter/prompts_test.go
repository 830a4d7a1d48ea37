package interpreter

import (
	"strings"
	"testing"

	"github.com/joshi510/careerbackend/internal/models"
)

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt()

	required := []string{"career counsellor", "JSON", "summary", "strengths", "growth_areas", "cognitive", "career_interest"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("system prompt missing keyword %q", keyword)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	profile := &models.ResultProfile{
		SessionID:      "sess-1",
		OverallPercent: 62.5,
		Categories: []models.CategoryScore{
			{Category: "cognitive", Total: 28, Count: 7},
			{Category: "study_habits", Total: 14, Count: 7},
		},
	}

	prompt := BuildUserPrompt(profile)

	required := []string{"62.5%", "cognitive", "4.00", "study_habits", "2.00", "7 answers"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("user prompt missing %q\nprompt:\n%s", keyword, prompt)
		}
	}

	// Individual answers never reach the model.
	if strings.Contains(prompt, "question") {
		t.Error("user prompt should not reference individual questions")
	}
}
