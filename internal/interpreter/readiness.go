package interpreter

import (
	"fmt"

	"github.com/joshi510/careerbackend/internal/models"
)

// Deterministic guidance derived from the stored profile. These rules are
// applied at read time so they never depend on the model being reachable.

// Readiness bands on the overall percent.
const (
	partiallyReadyThreshold = 40
	readyThreshold          = 60
)

func Readiness(overallPercent float64) (models.ReadinessStatus, string) {
	switch {
	case overallPercent < partiallyReadyThreshold:
		return models.ReadinessNotReady,
			fmt.Sprintf("An overall score of %.0f%% indicates key foundations still need to be built before committing to a career path.", overallPercent)
	case overallPercent < readyThreshold:
		return models.ReadinessPartiallyReady,
			fmt.Sprintf("An overall score of %.0f%% shows a developing profile: some areas are solid while others need focused work.", overallPercent)
	default:
		return models.ReadinessReady,
			fmt.Sprintf("An overall score of %.0f%% shows a strong, well-rounded profile ready for concrete career planning.", overallPercent)
	}
}

func Risk(readiness models.ReadinessStatus) (models.RiskLevel, string) {
	switch readiness {
	case models.ReadinessNotReady:
		return models.RiskHigh, "Without intervention there is a high risk of choosing a career path that does not fit, or of struggling in the chosen one."
	case models.ReadinessPartiallyReady:
		return models.RiskMedium, "With the current profile there is a moderate risk of setbacks; targeted improvement in the weaker areas reduces it substantially."
	default:
		return models.RiskLow, "The profile suggests a low risk of misdirection; the main task is converting readiness into a concrete plan."
	}
}

var directionByCategory = map[string]struct {
	direction string
	reason    string
}{
	"cognitive": {
		"Research, analysis, and problem-solving careers",
		"Cognitive reasoning is your strongest dimension, which suits work built around structured thinking and analysis.",
	},
	"aptitude": {
		"Engineering, technology, and applied technical fields",
		"Applied aptitude is your strongest dimension, which suits hands-on technical work where ability translates directly into results.",
	},
	"study_habits": {
		"Demanding structured tracks such as medicine, law, or accountancy",
		"Study discipline is your strongest dimension, which suits long professional programs that reward sustained, consistent preparation.",
	},
	"learning_style": {
		"Fast-evolving fields that reward versatile learners, such as design, media, or education",
		"Learning flexibility is your strongest dimension, which suits fields where methods and tools change often.",
	},
	"career_interest": {
		"Careers in the fields you are already actively exploring",
		"Career engagement is your strongest dimension; deepening the interests you already pursue is the most promising direction.",
	},
}

// CareerDirection picks a direction from the strongest category. Ties break
// toward the alphabetically first category so repeated reads agree.
func CareerDirection(categories []models.CategoryScore) (string, string) {
	if len(categories) == 0 {
		return "Broad exploration across fields", "No dimension scores are available to base a direction on."
	}

	best := categories[0]
	for _, cs := range categories[1:] {
		if cs.Average() > best.Average() {
			best = cs
		}
	}

	d, ok := directionByCategory[best.Category]
	if !ok {
		return "Careers building on your " + best.Category + " strengths",
			fmt.Sprintf("%s is your strongest dimension.", best.Category)
	}
	return d.direction, d.reason
}

// BuildRoadmap lays out three phases scaled to the readiness band. The weakest
// category steers the first phase.
func BuildRoadmap(readiness models.ReadinessStatus, categories []models.CategoryScore) models.Roadmap {
	weakest := ""
	if len(categories) > 0 {
		w := categories[0]
		for _, cs := range categories[1:] {
			if cs.Average() < w.Average() {
				w = cs
			}
		}
		weakest = w.Category
	}

	phase1 := models.RoadmapPhase{
		Duration:    "0-3 months",
		Title:       "Strengthen the foundation",
		Description: "Work on the weakest dimension before widening the search.",
		Actions: []string{
			"Set a fixed weekly routine targeting your " + categoryLabel(weakest) + " scores",
			"Track progress weekly and adjust the routine after each review",
		},
	}
	phase2 := models.RoadmapPhase{
		Duration:    "3-6 months",
		Title:       "Explore directions deliberately",
		Description: "Turn test results into first-hand knowledge of candidate fields.",
		Actions: []string{
			"Shortlist two or three fields matching your strongest dimensions",
			"Talk to at least one person working in each shortlisted field",
			"Take one project or course that tests a shortlisted field in practice",
		},
	}
	phase3 := models.RoadmapPhase{
		Duration:    "6-12 months",
		Title:       "Commit and prepare",
		Description: "Narrow to one direction and build the entry requirements for it.",
		Actions: []string{
			"Pick the field that held up best under first-hand exploration",
			"Map the subjects, exams, or portfolio work the field requires",
			"Retake the assessment to measure how the profile has moved",
		},
	}

	if readiness == models.ReadinessNotReady {
		phase1.Actions = append(phase1.Actions,
			"Hold off on narrowing career options until the routine holds for a full month")
	}
	return models.Roadmap{Phase1: phase1, Phase2: phase2, Phase3: phase3}
}

func categoryLabel(category string) string {
	switch category {
	case "cognitive":
		return "reasoning"
	case "aptitude":
		return "applied aptitude"
	case "study_habits":
		return "study habit"
	case "learning_style":
		return "learning method"
	case "career_interest":
		return "career exploration"
	case "":
		return "weakest"
	default:
		return category
	}
}

// BuildGuidance assembles the full interpretation response from the stored
// narrative and the deterministic rules above.
func BuildGuidance(profile *models.ResultProfile, in *models.Interpretation) *models.InterpretationResponse {
	readiness, readinessWhy := Readiness(profile.OverallPercent)
	risk, riskWhy := Risk(readiness)
	direction, directionWhy := CareerDirection(profile.Categories)

	return &models.InterpretationResponse{
		SessionID:             in.SessionID,
		Summary:               in.Summary,
		Strengths:             in.Strengths,
		GrowthAreas:           in.GrowthAreas,
		AIGenerated:           in.AIGenerated,
		OverallPercent:        profile.OverallPercent,
		ReadinessStatus:       readiness,
		ReadinessExplanation:  readinessWhy,
		RiskLevel:             risk,
		RiskExplanation:       riskWhy,
		CareerDirection:       direction,
		CareerDirectionReason: directionWhy,
		Roadmap:               BuildRoadmap(readiness, profile.Categories),
	}
}
