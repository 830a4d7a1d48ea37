package models

import (
	"sort"
	"time"
)

type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// TestSession is one user's attempt at the full test. Version is an
// optimistic concurrency counter: every mutation is a conditional update
// on (id, version), so concurrent writers cannot both win.
type TestSession struct {
	ID                string        `json:"id"`
	UserID            int64         `json:"user_id"`
	Status            SessionStatus `json:"status"`
	Version           int           `json:"-"`
	SubmittedSections []int         `json:"submitted_sections"`
	CreatedAt         time.Time     `json:"created_at"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty"`
}

// HasSubmitted reports whether the section at the given order index has
// already been submitted on this session.
func (s *TestSession) HasSubmitted(order int) bool {
	for _, o := range s.SubmittedSections {
		if o == order {
			return true
		}
	}
	return false
}

// NextSection returns the lowest unsubmitted order index given the total
// section count, or 0 when every section has been submitted.
func (s *TestSession) NextSection(totalSections int) int {
	submitted := make(map[int]bool, len(s.SubmittedSections))
	for _, o := range s.SubmittedSections {
		submitted[o] = true
	}
	for order := 1; order <= totalSections; order++ {
		if !submitted[order] {
			return order
		}
	}
	return 0
}

// AnswerRecord is one answer for one (session, question) pair. Weight and
// Category are copied from the chosen option at submission time so scoring
// never re-reads the catalog.
type AnswerRecord struct {
	SessionID  string    `json:"session_id"`
	QuestionID int64     `json:"question_id"`
	OptionKey  string    `json:"option_key"`
	Weight     int       `json:"weight"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}

// ── Result Profile ───────────────────────────────────────

type CategoryScore struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Count    int    `json:"count"`
}

// Average returns the mean option weight for the category.
func (c CategoryScore) Average() float64 {
	if c.Count == 0 {
		return 0
	}
	return float64(c.Total) / float64(c.Count)
}

// ResultProfile is the aggregate computed once at completion and persisted
// with the session. Categories are sorted by name so repeated reads are
// byte-identical.
type ResultProfile struct {
	SessionID      string          `json:"session_id"`
	Categories     []CategoryScore `json:"categories"`
	OverallPercent float64         `json:"overall_percent"`
	ComputedAt     time.Time       `json:"computed_at"`
}

// SortCategories orders the category scores by name, in place.
func (p *ResultProfile) SortCategories() {
	sort.Slice(p.Categories, func(i, j int) bool {
		return p.Categories[i].Category < p.Categories[j].Category
	})
}

// Interpretation is the narrative produced by the generation service for a
// completed session. At most one row exists per session.
type Interpretation struct {
	SessionID   string    `json:"session_id"`
	Summary     string    `json:"summary"`
	Strengths   []string  `json:"strengths"`
	GrowthAreas []string  `json:"growth_areas"`
	AIGenerated bool      `json:"ai_generated"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ── Request Types ────────────────────────────────────────

type SectionAnswer struct {
	QuestionID int64  `json:"question_id"`
	OptionKey  string `json:"option_key"`
}

type SubmitSectionRequest struct {
	Answers []SectionAnswer `json:"answers"`
}

// ── Response Types ───────────────────────────────────────

type StartTestResponse struct {
	SessionID      string        `json:"session_id"`
	Status         SessionStatus `json:"status"`
	StartedAt      time.Time     `json:"started_at"`
	TotalSections  int           `json:"total_sections"`
	TotalQuestions int           `json:"total_questions"`
	Resumed        bool          `json:"resumed"`
}

type SubmitSectionResponse struct {
	SessionID         string `json:"session_id"`
	SubmittedSection  int    `json:"submitted_section"`
	RemainingSections []int  `json:"remaining_sections"`
	ReadyToComplete   bool   `json:"ready_to_complete"`
}

type SessionStatusResponse struct {
	SessionID         string        `json:"session_id"`
	Status            SessionStatus `json:"status"`
	StartedAt         time.Time     `json:"started_at"`
	CompletedAt       *time.Time    `json:"completed_at,omitempty"`
	SubmittedSections []int         `json:"submitted_sections"`
	CurrentSection    int           `json:"current_section"`
	TotalSections     int           `json:"total_sections"`
}

type ResultResponse struct {
	SessionID      string          `json:"session_id"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	Profile        *ResultProfile  `json:"profile"`
	Interpretation *Interpretation `json:"interpretation,omitempty"`
}

type ResultSummary struct {
	SessionID         string     `json:"session_id"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	OverallPercent    float64    `json:"overall_percent"`
	HasInterpretation bool       `json:"has_interpretation"`
}

type ResultListResponse struct {
	Results []ResultSummary `json:"results"`
	Total   int             `json:"total"`
}
