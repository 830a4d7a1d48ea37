package models

// ── Guidance Types ───────────────────────────────────────
//
// Readiness, risk, and direction are deterministic rule-based fields
// derived from the ResultProfile at read time. Only the narrative summary,
// strengths, and growth areas come from the generation service.

type ReadinessStatus string

const (
	ReadinessNotReady       ReadinessStatus = "NOT_READY"
	ReadinessPartiallyReady ReadinessStatus = "PARTIALLY_READY"
	ReadinessReady          ReadinessStatus = "READY"
)

type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

type RoadmapPhase struct {
	Duration    string   `json:"duration"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

type Roadmap struct {
	Phase1 RoadmapPhase `json:"phase1"`
	Phase2 RoadmapPhase `json:"phase2"`
	Phase3 RoadmapPhase `json:"phase3"`
}

type InterpretationResponse struct {
	SessionID             string          `json:"session_id"`
	Summary               string          `json:"summary"`
	Strengths             []string        `json:"strengths"`
	GrowthAreas           []string        `json:"growth_areas"`
	AIGenerated           bool            `json:"ai_generated"`
	OverallPercent        float64         `json:"overall_percent"`
	ReadinessStatus       ReadinessStatus `json:"readiness_status"`
	ReadinessExplanation  string          `json:"readiness_explanation"`
	RiskLevel             RiskLevel       `json:"risk_level"`
	RiskExplanation       string          `json:"risk_explanation"`
	CareerDirection       string          `json:"career_direction"`
	CareerDirectionReason string          `json:"career_direction_reason"`
	Roadmap               Roadmap         `json:"roadmap"`
}
