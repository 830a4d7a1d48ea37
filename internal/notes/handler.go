package notes

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/joshi510/careerbackend/internal/models"
)

// Handler lets counsellors attach notes to a student's session and read
// them back. Route registration guards these with the counsellor role.
type Handler struct {
	db *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	counsellorID := r.Context().Value("user_id").(int64)
	sessionID := mux.Vars(r)["id"]

	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Note body is required"})
		return
	}

	var exists bool
	if err := h.db.QueryRowContext(r.Context(),
		`SELECT EXISTS (SELECT 1 FROM test_sessions WHERE id = $1)`, sessionID,
	).Scan(&exists); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	if !exists {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "session not found"})
		return
	}

	var note models.CounsellorNote
	err := h.db.QueryRowContext(r.Context(),
		`INSERT INTO counsellor_notes (session_id, counsellor_id, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, session_id, counsellor_id, body, created_at`,
		sessionID, counsellorID, req.Body,
	).Scan(&note.ID, &note.SessionID, &note.CounsellorID, &note.Body, &note.CreatedAt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create note"})
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	rows, err := h.db.QueryContext(r.Context(),
		`SELECT id, session_id, counsellor_id, body, created_at
		 FROM counsellor_notes WHERE session_id = $1 ORDER BY created_at DESC`,
		sessionID,
	)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}
	defer rows.Close()

	notes := []models.CounsellorNote{}
	for rows.Next() {
		var note models.CounsellorNote
		if err := rows.Scan(&note.ID, &note.SessionID, &note.CounsellorID, &note.Body, &note.CreatedAt); err != nil {
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
			return
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, models.NoteListResponse{Notes: notes, Total: len(notes)})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
