package sessions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/joshi510/careerbackend/internal/interpreter"
	"github.com/joshi510/careerbackend/internal/models"
)

// Handler exposes the session lifecycle over HTTP. All routes run behind the
// authentication middleware, which stores user_id and user_role on the
// request context.
type Handler struct {
	service *Service
	interp  *interpreter.Service
}

func NewHandler(service *Service, interp *interpreter.Service) *Handler {
	return &Handler{service: service, interp: interp}
}

func (h *Handler) StartTest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	resp, err := h.service.Start(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	status := http.StatusCreated
	if resp.Resumed {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	resp, err := h.service.SectionList(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSectionQuestions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	order, ok := sectionOrder(w, r)
	if !ok {
		return
	}

	resp, err := h.service.SectionQuestions(r.Context(), userID, order)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitSection(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	order, ok := sectionOrder(w, r)
	if !ok {
		return
	}

	var req models.SubmitSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitSection(r.Context(), userID, order, req.Answers)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	sessionID := mux.Vars(r)["id"]

	resp, err := h.service.Status(r.Context(), userID, sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CompleteTest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	sessionID := mux.Vars(r)["id"]

	profile, _, err := h.service.Complete(r.Context(), userID, sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	role := r.Context().Value("user_role").(models.Role)
	sessionID := mux.Vars(r)["id"]

	resp, err := h.service.Result(r.Context(), userID, role, sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	resp, err := h.service.ListResults(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) RequestInterpretation(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	role := r.Context().Value("user_role").(models.Role)
	sessionID := mux.Vars(r)["id"]

	sess, profile, err := h.service.CompletedSession(r.Context(), userID, role, sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	in, err := h.interp.Generate(r.Context(), sess, profile)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interpreter.BuildGuidance(profile, in))
}

func (h *Handler) GetInterpretation(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	role := r.Context().Value("user_role").(models.Role)
	sessionID := mux.Vars(r)["id"]

	resp, err := h.service.Result(r.Context(), userID, role, sessionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if resp.Interpretation == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{
			Error: "No interpretation has been generated for this session yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, interpreter.BuildGuidance(resp.Profile, resp.Interpretation))
}

func sectionOrder(w http.ResponseWriter, r *http.Request) (int, bool) {
	order, err := strconv.Atoi(mux.Vars(r)["order"])
	if err != nil || order < 1 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid section order"})
		return 0, false
	}
	return order, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSectionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrSectionLocked):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrOutOfOrderSubmission),
		errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrSectionsRemaining),
		errors.Is(err, ErrSessionNotCompleted),
		errors.Is(err, ErrOpenSessionExists):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrIncompleteAnswerSet):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, interpreter.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("Session handler error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
