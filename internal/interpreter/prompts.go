package interpreter

import (
	"fmt"
	"strings"

	"github.com/joshi510/careerbackend/internal/models"
)

// SystemPrompt frames the model as a career counsellor and pins the output
// contract to a single JSON object.
func SystemPrompt() string {
	return `You are an experienced career counsellor interpreting a student's career-profiling test results.

The test has five dimensions, each scored as the mean of Likert responses from 1 (strongly disagree) to 5 (strongly agree):
- cognitive: logical, numerical, verbal, and abstract reasoning
- aptitude: applied numerical, logical, verbal, and spatial ability
- study_habits: concentration, consistency, time management, self-discipline
- learning_style: awareness and flexibility of learning methods
- career_interest: engagement with career exploration

Respond with ONLY a JSON object in this exact format, no markdown fences and no text outside the JSON:
{
  "summary": "2-4 sentences interpreting the overall profile in plain, encouraging language",
  "strengths": ["2-4 short bullet statements"],
  "growth_areas": ["1-3 short bullet statements"]
}

Ground every statement in the scores provided. Do not invent results, do not mention the scoring scale, and do not address the student by name.`
}

// BuildUserPrompt renders the profile as a compact score table. Only
// aggregate scores go to the model, never individual answers.
func BuildUserPrompt(profile *models.ResultProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall score: %.1f%%\n\nDimension scores (mean of 1-5):\n", profile.OverallPercent)
	for _, cs := range profile.Categories {
		fmt.Fprintf(&b, "- %s: %.2f (%d answers)\n", cs.Category, cs.Average(), cs.Count)
	}
	b.WriteString("\nWrite the interpretation JSON for this profile.")
	return b.String()
}
