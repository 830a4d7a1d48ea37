package interpreter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joshi510/careerbackend/internal/models"
)

type fakeSaver struct {
	stored map[string]*models.Interpretation
	saves  int
}

func newFakeSaver() *fakeSaver {
	return &fakeSaver{stored: make(map[string]*models.Interpretation)}
}

func (f *fakeSaver) Interpretation(ctx context.Context, sessionID string) (*models.Interpretation, error) {
	return f.stored[sessionID], nil
}

func (f *fakeSaver) SaveInterpretation(ctx context.Context, in *models.Interpretation) error {
	f.saves++
	if _, exists := f.stored[in.SessionID]; exists {
		return nil
	}
	f.stored[in.SessionID] = in
	return nil
}

type fakeLLM struct {
	content string
	err     error
	calls   int
}

func (f *fakeLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (*LLMResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &LLMResponse{Content: f.content}, nil
}

func testSession() (*models.TestSession, *models.ResultProfile) {
	sess := &models.TestSession{ID: "sess-1", UserID: 1, Status: models.SessionCompleted}
	profile := &models.ResultProfile{
		SessionID:      "sess-1",
		OverallPercent: 55,
		Categories:     []models.CategoryScore{{Category: "cognitive", Total: 22, Count: 7}},
	}
	return sess, profile
}

func TestGenerateStoresOnce(t *testing.T) {
	saver := newFakeSaver()
	llm := &fakeLLM{content: validResponse}
	svc := NewService(saver, llm, time.Second)
	sess, profile := testSession()

	first, err := svc.Generate(context.Background(), sess, profile)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !first.AIGenerated {
		t.Error("interpretation should be marked ai_generated")
	}
	if first.Summary == "" || len(first.Strengths) == 0 {
		t.Error("interpretation content missing")
	}

	second, err := svc.Generate(context.Background(), sess, profile)
	if err != nil {
		t.Fatalf("repeat Generate failed: %v", err)
	}
	if llm.calls != 1 {
		t.Errorf("model called %d times, want 1", llm.calls)
	}
	if second.Summary != first.Summary {
		t.Error("repeat call should return the stored interpretation")
	}
}

func TestGenerateFailureLeavesNothingBehind(t *testing.T) {
	saver := newFakeSaver()
	llm := &fakeLLM{err: errors.New("api down")}
	svc := NewService(saver, llm, time.Second)
	sess, profile := testSession()

	_, err := svc.Generate(context.Background(), sess, profile)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if saver.saves != 0 {
		t.Error("failed generation must not persist anything")
	}

	// A retry after recovery succeeds and persists.
	llm.err = nil
	llm.content = validResponse
	in, err := svc.Generate(context.Background(), sess, profile)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if in == nil || saver.stored[sess.ID] == nil {
		t.Error("retry should persist the interpretation")
	}
}

func TestGenerateRejectsMalformedOutput(t *testing.T) {
	saver := newFakeSaver()
	llm := &fakeLLM{content: "not json at all"}
	svc := NewService(saver, llm, time.Second)
	sess, profile := testSession()

	_, err := svc.Generate(context.Background(), sess, profile)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if saver.saves != 0 {
		t.Error("malformed output must not be persisted")
	}
}
