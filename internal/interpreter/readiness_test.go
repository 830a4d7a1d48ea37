package interpreter

import (
	"testing"

	"github.com/joshi510/careerbackend/internal/models"
)

func TestReadinessBands(t *testing.T) {
	tests := []struct {
		percent float64
		want    models.ReadinessStatus
	}{
		{0, models.ReadinessNotReady},
		{39.9, models.ReadinessNotReady},
		{40, models.ReadinessPartiallyReady},
		{59.9, models.ReadinessPartiallyReady},
		{60, models.ReadinessReady},
		{100, models.ReadinessReady},
	}

	for _, tt := range tests {
		got, explanation := Readiness(tt.percent)
		if got != tt.want {
			t.Errorf("Readiness(%v) = %v, want %v", tt.percent, got, tt.want)
		}
		if explanation == "" {
			t.Errorf("Readiness(%v) returned empty explanation", tt.percent)
		}
	}
}

func TestRiskFollowsReadiness(t *testing.T) {
	tests := []struct {
		readiness models.ReadinessStatus
		want      models.RiskLevel
	}{
		{models.ReadinessNotReady, models.RiskHigh},
		{models.ReadinessPartiallyReady, models.RiskMedium},
		{models.ReadinessReady, models.RiskLow},
	}

	for _, tt := range tests {
		got, explanation := Risk(tt.readiness)
		if got != tt.want {
			t.Errorf("Risk(%v) = %v, want %v", tt.readiness, got, tt.want)
		}
		if explanation == "" {
			t.Errorf("Risk(%v) returned empty explanation", tt.readiness)
		}
	}
}

func TestCareerDirectionPicksStrongestCategory(t *testing.T) {
	categories := []models.CategoryScore{
		{Category: "cognitive", Total: 28, Count: 7},
		{Category: "aptitude", Total: 33, Count: 7},
		{Category: "study_habits", Total: 14, Count: 7},
	}

	direction, reason := CareerDirection(categories)
	want := directionByCategory["aptitude"]
	if direction != want.direction {
		t.Errorf("direction = %q, want %q", direction, want.direction)
	}
	if reason != want.reason {
		t.Errorf("reason = %q, want %q", reason, want.reason)
	}
}

func TestCareerDirectionTieBreaksAlphabetically(t *testing.T) {
	// Sorted category slices tie-break toward the first entry.
	categories := []models.CategoryScore{
		{Category: "aptitude", Total: 21, Count: 7},
		{Category: "cognitive", Total: 21, Count: 7},
	}
	direction, _ := CareerDirection(categories)
	if direction != directionByCategory["aptitude"].direction {
		t.Errorf("tie should resolve to first category, got %q", direction)
	}
}

func TestCareerDirectionEmptyProfile(t *testing.T) {
	direction, reason := CareerDirection(nil)
	if direction == "" || reason == "" {
		t.Error("empty profile should still yield a direction and reason")
	}
}

func TestBuildRoadmapPhases(t *testing.T) {
	categories := []models.CategoryScore{
		{Category: "cognitive", Total: 30, Count: 7},
		{Category: "study_habits", Total: 10, Count: 7},
	}

	roadmap := BuildRoadmap(models.ReadinessReady, categories)
	for _, phase := range []models.RoadmapPhase{roadmap.Phase1, roadmap.Phase2, roadmap.Phase3} {
		if phase.Duration == "" || phase.Title == "" || phase.Description == "" {
			t.Errorf("phase %+v has empty fields", phase)
		}
		if len(phase.Actions) == 0 {
			t.Errorf("phase %q has no actions", phase.Title)
		}
	}

	notReady := BuildRoadmap(models.ReadinessNotReady, categories)
	if len(notReady.Phase1.Actions) <= len(roadmap.Phase1.Actions) {
		t.Error("not-ready roadmap should add a holding action to phase 1")
	}
}

func TestBuildGuidance(t *testing.T) {
	profile := &models.ResultProfile{
		SessionID:      "sess-1",
		OverallPercent: 72,
		Categories: []models.CategoryScore{
			{Category: "career_interest", Total: 31, Count: 7},
			{Category: "cognitive", Total: 24, Count: 7},
		},
	}
	in := &models.Interpretation{
		SessionID:   "sess-1",
		Summary:     "Strong profile.",
		Strengths:   []string{"reasoning"},
		GrowthAreas: []string{"consistency"},
		AIGenerated: true,
	}

	resp := BuildGuidance(profile, in)
	if resp.SessionID != "sess-1" {
		t.Errorf("session id = %q", resp.SessionID)
	}
	if resp.ReadinessStatus != models.ReadinessReady {
		t.Errorf("readiness = %v, want READY", resp.ReadinessStatus)
	}
	if resp.RiskLevel != models.RiskLow {
		t.Errorf("risk = %v, want LOW", resp.RiskLevel)
	}
	if resp.Summary != in.Summary {
		t.Error("summary should come from the stored interpretation")
	}
	if resp.OverallPercent != profile.OverallPercent {
		t.Error("overall percent should come from the profile")
	}
	if resp.CareerDirection == "" || resp.CareerDirectionReason == "" {
		t.Error("career direction fields should be populated")
	}
}
