package models

import "time"

// CounsellorNote is free-form commentary a counsellor attaches to a
// student's session.
type CounsellorNote struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	CounsellorID int64     `json:"counsellor_id"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateNoteRequest struct {
	Body string `json:"body"`
}

type NoteListResponse struct {
	Notes []CounsellorNote `json:"notes"`
	Total int              `json:"total"`
}
