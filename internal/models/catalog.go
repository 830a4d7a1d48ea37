package models

import "time"

// ── Catalog Entities ─────────────────────────────────────
//
// Sections, questions, and options are loaded once at startup and never
// mutated afterwards. The session lifecycle only ever reads them.

type Section struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	OrderIndex       int        `json:"order_index"`
	TimeLimitSeconds int        `json:"time_limit_seconds"`
	Questions        []Question `json:"questions,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type Question struct {
	ID         int64    `json:"id"`
	SectionID  int64    `json:"section_id"`
	Prompt     string   `json:"prompt"`
	OrderIndex int      `json:"order_index"`
	Options    []Option `json:"options"`
}

// Option is one selectable answer. Weight and Category drive scoring and
// are never serialized to test takers.
type Option struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Key        string `json:"key"`
	Label      string `json:"label"`
	Weight     int    `json:"-"`
	Category   string `json:"-"`
}

// ── Serving Types (strip scoring data) ───────────────────

type ServedQuestion struct {
	QuestionID int64          `json:"question_id"`
	Prompt     string         `json:"prompt"`
	Options    []ServedOption `json:"options"`
}

type ServedOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type SectionQuestionsResponse struct {
	SectionOrder int              `json:"section_order"`
	SectionName  string           `json:"section_name"`
	Questions    []ServedQuestion `json:"questions"`
}

// SectionState describes a section's availability for the caller's open
// session: completed, available (next in order), or locked.
type SectionState string

const (
	SectionCompleted SectionState = "completed"
	SectionAvailable SectionState = "available"
	SectionLocked    SectionState = "locked"
)

type SectionMeta struct {
	OrderIndex       int          `json:"order_index"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	QuestionCount    int          `json:"question_count"`
	TimeLimitSeconds int          `json:"time_limit_seconds"`
	State            SectionState `json:"state"`
}

type SectionListResponse struct {
	SessionID      string        `json:"session_id,omitempty"`
	CurrentSection int           `json:"current_section"`
	Sections       []SectionMeta `json:"sections"`
}
