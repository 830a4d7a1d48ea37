package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joshi510/careerbackend/internal/catalog"
	"github.com/joshi510/careerbackend/internal/models"
)

// Service implements the test-taking lifecycle: start, ordered section
// submission, explicit completion with scoring, and result reads. All
// validation happens against a session snapshot before any write; the write
// itself is conditional on the snapshot's version.
type Service struct {
	store   Store
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewService(store Store, cat *catalog.Catalog) *Service {
	return &Service{store: store, catalog: cat, now: time.Now}
}

// Start returns the caller's open session, creating one if none exists.
// Calling it again while a session is open resumes that session rather than
// starting over.
func (s *Service) Start(ctx context.Context, userID int64) (*models.StartTestResponse, error) {
	sess, err := s.store.OpenSessionForUser(ctx, userID)
	if err == nil {
		return s.startResponse(sess, true), nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("look up open session: %w", err)
	}

	sess = &models.TestSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    models.SessionInProgress,
		CreatedAt: s.now(),
	}
	err = s.store.CreateSession(ctx, sess)
	if errors.Is(err, ErrOpenSessionExists) {
		// Lost a race with a concurrent start; resume the winner's session.
		sess, err = s.store.OpenSessionForUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("resume after start race: %w", err)
		}
		return s.startResponse(sess, true), nil
	}
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s.startResponse(sess, false), nil
}

func (s *Service) startResponse(sess *models.TestSession, resumed bool) *models.StartTestResponse {
	return &models.StartTestResponse{
		SessionID:      sess.ID,
		Status:         sess.Status,
		StartedAt:      sess.CreatedAt,
		TotalSections:  s.catalog.TotalSections(),
		TotalQuestions: s.catalog.TotalQuestions(),
		Resumed:        resumed,
	}
}

// SectionList reports every section with its availability for the caller's
// open session. Without an open session only the first section shows as
// available.
func (s *Service) SectionList(ctx context.Context, userID int64) (*models.SectionListResponse, error) {
	next := 1
	resp := &models.SectionListResponse{}

	sess, err := s.store.OpenSessionForUser(ctx, userID)
	switch {
	case err == nil:
		resp.SessionID = sess.ID
		next = sess.NextSection(s.catalog.TotalSections())
	case errors.Is(err, ErrSessionNotFound):
		sess = nil
	default:
		return nil, fmt.Errorf("look up open session: %w", err)
	}
	resp.CurrentSection = next

	for _, sec := range s.catalog.Sections() {
		state := models.SectionLocked
		switch {
		case sess != nil && sess.HasSubmitted(sec.OrderIndex):
			state = models.SectionCompleted
		case sec.OrderIndex == next:
			state = models.SectionAvailable
		}
		resp.Sections = append(resp.Sections, models.SectionMeta{
			OrderIndex:       sec.OrderIndex,
			Name:             sec.Name,
			Description:      sec.Description,
			QuestionCount:    len(sec.Questions),
			TimeLimitSeconds: sec.TimeLimitSeconds,
			State:            state,
		})
	}
	return resp, nil
}

// SectionQuestions serves a section's questions with scoring data stripped.
// A section is readable once it is the next unsubmitted one or has already
// been submitted; later sections stay locked.
func (s *Service) SectionQuestions(ctx context.Context, userID int64, order int) (*models.SectionQuestionsResponse, error) {
	if _, ok := s.catalog.SectionByOrder(order); !ok {
		return nil, fmt.Errorf("section %d: %w", order, ErrSectionNotFound)
	}

	sess, err := s.store.OpenSessionForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := sess.NextSection(s.catalog.TotalSections())
	if !sess.HasSubmitted(order) && order != next {
		return nil, fmt.Errorf("section %d: %w", order, ErrSectionLocked)
	}

	resp, _ := s.catalog.ServeSection(order)
	return resp, nil
}

// SubmitSection validates and records the answers for one section of the
// caller's open session. Sections
// must arrive strictly in order, exactly once, with exactly one valid answer
// per question in the section. Nothing is persisted unless every check
// passes.
func (s *Service) SubmitSection(ctx context.Context, userID int64, order int, submitted []models.SectionAnswer) (*models.SubmitSectionResponse, error) {
	sess, err := s.store.OpenSessionForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sec, ok := s.catalog.SectionByOrder(order)
	if !ok {
		return nil, fmt.Errorf("section %d: %w", order, ErrSectionNotFound)
	}
	if sess.HasSubmitted(order) {
		return nil, fmt.Errorf("section %d: %w", order, ErrAlreadySubmitted)
	}
	if next := sess.NextSection(s.catalog.TotalSections()); order != next {
		return nil, fmt.Errorf("section %d submitted while section %d is next: %w", order, next, ErrOutOfOrderSubmission)
	}

	answers, err := s.validateAnswers(sess, sec, submitted)
	if err != nil {
		return nil, err
	}

	err = s.store.SubmitSection(ctx, sess, order, answers)
	if errors.Is(err, ErrVersionConflict) {
		// A concurrent submit won; this one is a duplicate.
		return nil, fmt.Errorf("section %d: %w", order, ErrAlreadySubmitted)
	}
	if err != nil {
		return nil, fmt.Errorf("persist section %d: %w", order, err)
	}

	var remaining []int
	for _, other := range s.catalog.Sections() {
		if !sess.HasSubmitted(other.OrderIndex) {
			remaining = append(remaining, other.OrderIndex)
		}
	}
	return &models.SubmitSectionResponse{
		SessionID:         sess.ID,
		SubmittedSection:  order,
		RemainingSections: remaining,
		ReadyToComplete:   len(remaining) == 0,
	}, nil
}

func (s *Service) validateAnswers(sess *models.TestSession, sec *models.Section, submitted []models.SectionAnswer) ([]models.AnswerRecord, error) {
	if len(submitted) != len(sec.Questions) {
		return nil, fmt.Errorf("section %d expects %d answers, got %d: %w",
			sec.OrderIndex, len(sec.Questions), len(submitted), ErrIncompleteAnswerSet)
	}

	byQuestion := make(map[int64]string, len(submitted))
	for _, a := range submitted {
		if _, dup := byQuestion[a.QuestionID]; dup {
			return nil, fmt.Errorf("duplicate answer for question %d: %w", a.QuestionID, ErrIncompleteAnswerSet)
		}
		byQuestion[a.QuestionID] = a.OptionKey
	}

	now := s.now()
	answers := make([]models.AnswerRecord, 0, len(sec.Questions))
	for _, q := range sec.Questions {
		key, ok := byQuestion[q.ID]
		if !ok {
			return nil, fmt.Errorf("missing answer for question %d: %w", q.ID, ErrIncompleteAnswerSet)
		}
		opt, ok := s.catalog.Option(q.ID, key)
		if !ok {
			return nil, fmt.Errorf("question %d has no option %q: %w", q.ID, key, ErrIncompleteAnswerSet)
		}
		answers = append(answers, models.AnswerRecord{
			SessionID:  sess.ID,
			QuestionID: q.ID,
			OptionKey:  opt.Key,
			Weight:     opt.Weight,
			Category:   opt.Category,
			CreatedAt:  now,
		})
	}
	return answers, nil
}

// Complete scores the session and marks it completed. Completing an already
// completed session returns the stored profile unchanged. Completing with
// sections outstanding fails without writing.
func (s *Service) Complete(ctx context.Context, userID int64, sessionID string) (*models.ResultProfile, bool, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, false, err
	}

	if sess.Status == models.SessionCompleted {
		profile, err := s.store.Profile(ctx, sessionID)
		if err != nil {
			return nil, false, fmt.Errorf("load stored profile: %w", err)
		}
		return profile, true, nil
	}

	if next := sess.NextSection(s.catalog.TotalSections()); next != 0 {
		return nil, false, fmt.Errorf("section %d not submitted: %w", next, ErrSectionsRemaining)
	}

	answers, err := s.store.Answers(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("load answers: %w", err)
	}
	if len(answers) != s.catalog.TotalQuestions() {
		return nil, false, fmt.Errorf("expected %d answers, found %d: %w",
			s.catalog.TotalQuestions(), len(answers), ErrSectionsRemaining)
	}

	now := s.now()
	profile := ComputeProfile(sessionID, answers, now)
	sess.CompletedAt = &now

	err = s.store.CompleteSession(ctx, sess, profile)
	if errors.Is(err, ErrVersionConflict) {
		// A concurrent complete won; hand back what it stored.
		stored, perr := s.store.Profile(ctx, sessionID)
		if perr != nil || stored == nil {
			return nil, false, fmt.Errorf("resolve completion race: %w", err)
		}
		return stored, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("persist completion: %w", err)
	}
	return profile, false, nil
}

// Status reports the session's progress to its owner.
func (s *Service) Status(ctx context.Context, userID int64, sessionID string) (*models.SessionStatusResponse, error) {
	sess, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return &models.SessionStatusResponse{
		SessionID:         sess.ID,
		Status:            sess.Status,
		StartedAt:         sess.CreatedAt,
		CompletedAt:       sess.CompletedAt,
		SubmittedSections: sess.SubmittedSections,
		CurrentSection:    sess.NextSection(s.catalog.TotalSections()),
		TotalSections:     s.catalog.TotalSections(),
	}, nil
}

// Result returns the persisted profile and interpretation, if any, for a
// completed session. Counsellors may read any student's result; students
// only their own.
func (s *Service) Result(ctx context.Context, userID int64, role models.Role, sessionID string) (*models.ResultResponse, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID && role != models.RoleCounsellor {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrForbidden)
	}
	if sess.Status != models.SessionCompleted {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotCompleted)
	}

	profile, err := s.store.Profile(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	interp, err := s.store.Interpretation(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load interpretation: %w", err)
	}
	return &models.ResultResponse{
		SessionID:      sess.ID,
		CompletedAt:    sess.CompletedAt,
		Profile:        profile,
		Interpretation: interp,
	}, nil
}

// ListResults returns the caller's completed sessions, newest first.
func (s *Service) ListResults(ctx context.Context, userID int64) (*models.ResultListResponse, error) {
	summaries, err := s.store.ListResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.ResultSummary{}
	}
	return &models.ResultListResponse{Results: summaries, Total: len(summaries)}, nil
}

// CompletedSession loads a completed session the caller may read, for
// interpretation generation. Same access rule as Result.
func (s *Service) CompletedSession(ctx context.Context, userID int64, role models.Role, sessionID string) (*models.TestSession, *models.ResultProfile, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess.UserID != userID && role != models.RoleCounsellor {
		return nil, nil, fmt.Errorf("session %s: %w", sessionID, ErrForbidden)
	}
	if sess.Status != models.SessionCompleted {
		return nil, nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotCompleted)
	}
	profile, err := s.store.Profile(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, nil, fmt.Errorf("session %s has no stored profile: %w", sessionID, ErrSessionNotCompleted)
	}
	return sess, profile, nil
}

func (s *Service) ownedSession(ctx context.Context, userID int64, sessionID string) (*models.TestSession, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrForbidden)
	}
	return sess, nil
}
