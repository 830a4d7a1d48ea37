package sessions

import (
	"time"

	"github.com/joshi510/careerbackend/internal/models"
)

// Option weights are Likert positions 1 through 5. The overall percent maps
// the mean weight onto 0-100: a mean of 1 scores 0, a mean of 5 scores 100.
const (
	likertMin = 1
	likertMax = 5
)

// ComputeProfile aggregates answer records into per-category totals and the
// overall percent. It is pure: given the same answers it always produces the
// same profile, so the value persisted at completion and any recomputation
// agree.
func ComputeProfile(sessionID string, answers []models.AnswerRecord, now time.Time) *models.ResultProfile {
	byCategory := make(map[string]*models.CategoryScore)
	sum, count := 0, 0

	for _, a := range answers {
		cs, ok := byCategory[a.Category]
		if !ok {
			cs = &models.CategoryScore{Category: a.Category}
			byCategory[a.Category] = cs
		}
		cs.Total += a.Weight
		cs.Count++
		sum += a.Weight
		count++
	}

	profile := &models.ResultProfile{
		SessionID:      sessionID,
		Categories:     make([]models.CategoryScore, 0, len(byCategory)),
		OverallPercent: overallPercent(sum, count),
		ComputedAt:     now,
	}
	for _, cs := range byCategory {
		profile.Categories = append(profile.Categories, *cs)
	}
	profile.SortCategories()
	return profile
}

func overallPercent(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	mean := float64(sum) / float64(count)
	pct := (mean - likertMin) / (likertMax - likertMin) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
