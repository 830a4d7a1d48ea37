package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joshi510/careerbackend/internal/models"
)

// ErrUnavailable means the interpretation could not be produced this time.
// Nothing is persisted on this path, so the caller can simply retry later.
var ErrUnavailable = errors.New("interpretation is temporarily unavailable")

// Saver is the slice of the session store the service needs: read and write
// one interpretation per session.
type Saver interface {
	Interpretation(ctx context.Context, sessionID string) (*models.Interpretation, error)
	SaveInterpretation(ctx context.Context, in *models.Interpretation) error
}

// Service produces and stores one interpretation per completed session.
type Service struct {
	store   Saver
	llm     LLMClient
	timeout time.Duration
	now     func() time.Time
}

func NewService(store Saver, llm LLMClient, timeout time.Duration) *Service {
	return &Service{store: store, llm: llm, timeout: timeout, now: time.Now}
}

// Generate returns the stored interpretation if one exists; otherwise it
// calls the model under a bounded timeout, validates the output, and stores
// it. A model failure or timeout surfaces as ErrUnavailable without writing
// anything, so completed results are never blocked on the model.
func (s *Service) Generate(ctx context.Context, sess *models.TestSession, profile *models.ResultProfile) (*models.Interpretation, error) {
	existing, err := s.store.Interpretation(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("load interpretation: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.llm.Generate(callCtx, SystemPrompt(), BuildUserPrompt(profile))
	if err != nil {
		log.Printf("Interpretation generation failed for session %s: %v", sess.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	gen, err := ParseResponse(resp.Content)
	if err != nil {
		log.Printf("Interpretation response rejected for session %s: %v", sess.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	in := &models.Interpretation{
		SessionID:   sess.ID,
		Summary:     gen.Summary,
		Strengths:   gen.Strengths,
		GrowthAreas: gen.GrowthAreas,
		AIGenerated: true,
		GeneratedAt: s.now(),
	}
	if err := s.store.SaveInterpretation(ctx, in); err != nil {
		return nil, fmt.Errorf("store interpretation: %w", err)
	}

	// A concurrent generation may have won the insert; the stored row is
	// authoritative either way.
	stored, err := s.store.Interpretation(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("reload interpretation: %w", err)
	}
	if stored == nil {
		return in, nil
	}
	return stored, nil
}
