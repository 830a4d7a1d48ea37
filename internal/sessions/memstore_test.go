package sessions

import (
	"context"
	"sort"
	"sync"

	"github.com/joshi510/careerbackend/internal/models"
)

// memStore is an in-memory Store with the same version semantics as the
// Postgres implementation, so the service can be exercised without a
// database.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*models.TestSession
	answers  map[string][]models.AnswerRecord
	profiles map[string]*models.ResultProfile
	interps  map[string]*models.Interpretation
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[string]*models.TestSession),
		answers:  make(map[string][]models.AnswerRecord),
		profiles: make(map[string]*models.ResultProfile),
		interps:  make(map[string]*models.Interpretation),
	}
}

func copySession(s *models.TestSession) *models.TestSession {
	dup := *s
	dup.SubmittedSections = append([]int(nil), s.SubmittedSections...)
	return &dup
}

func (m *memStore) CreateSession(ctx context.Context, s *models.TestSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sessions {
		if existing.UserID == s.UserID && existing.Status != models.SessionCompleted {
			return ErrOpenSessionExists
		}
	}
	m.sessions[s.ID] = copySession(s)
	return nil
}

func (m *memStore) GetSession(ctx context.Context, id string) (*models.TestSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return copySession(s), nil
}

func (m *memStore) OpenSessionForUser(ctx context.Context, userID int64) (*models.TestSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.UserID == userID && s.Status != models.SessionCompleted {
			return copySession(s), nil
		}
	}
	return nil, ErrSessionNotFound
}

func (m *memStore) SubmitSection(ctx context.Context, s *models.TestSession, order int, answers []models.AnswerRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.sessions[s.ID]
	if !ok {
		return ErrSessionNotFound
	}
	if stored.Version != s.Version || stored.Status != models.SessionInProgress {
		return ErrVersionConflict
	}
	stored.Version++
	stored.SubmittedSections = append(stored.SubmittedSections, order)
	m.answers[s.ID] = append(m.answers[s.ID], answers...)
	s.Version++
	s.SubmittedSections = append(s.SubmittedSections, order)
	return nil
}

func (m *memStore) CompleteSession(ctx context.Context, s *models.TestSession, profile *models.ResultProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.sessions[s.ID]
	if !ok {
		return ErrSessionNotFound
	}
	if stored.Version != s.Version || stored.Status != models.SessionInProgress {
		return ErrVersionConflict
	}
	stored.Version++
	stored.Status = models.SessionCompleted
	stored.CompletedAt = s.CompletedAt
	m.profiles[s.ID] = profile
	s.Version++
	s.Status = models.SessionCompleted
	return nil
}

func (m *memStore) Answers(ctx context.Context, sessionID string) ([]models.AnswerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AnswerRecord(nil), m.answers[sessionID]...), nil
}

func (m *memStore) Profile(ctx context.Context, sessionID string) (*models.ResultProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profiles[sessionID], nil
}

func (m *memStore) Interpretation(ctx context.Context, sessionID string) (*models.Interpretation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interps[sessionID], nil
}

func (m *memStore) SaveInterpretation(ctx context.Context, in *models.Interpretation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.interps[in.SessionID]; exists {
		return nil
	}
	m.interps[in.SessionID] = in
	return nil
}

func (m *memStore) ListResults(ctx context.Context, userID int64) ([]models.ResultSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var summaries []models.ResultSummary
	for _, s := range m.sessions {
		if s.UserID != userID || s.Status != models.SessionCompleted {
			continue
		}
		sum := models.ResultSummary{SessionID: s.ID, CompletedAt: s.CompletedAt}
		if p := m.profiles[s.ID]; p != nil {
			sum.OverallPercent = p.OverallPercent
		}
		_, sum.HasInterpretation = m.interps[s.ID]
		summaries = append(summaries, sum)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CompletedAt.After(*summaries[j].CompletedAt)
	})
	return summaries, nil
}
