package sessions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshi510/careerbackend/internal/catalog"
	"github.com/joshi510/careerbackend/internal/models"
)

func fixtureQuestion(id int64, sectionID int64) models.Question {
	return models.Question{
		ID:        id,
		SectionID: sectionID,
		Prompt:    "statement",
		Options: []models.Option{
			{ID: id*10 + 1, QuestionID: id, Key: "A", Label: "Yes", Weight: 1, Category: "X"},
			{ID: id*10 + 2, QuestionID: id, Key: "B", Label: "No", Weight: 0, Category: "X"},
		},
	}
}

// Two sections of one question each, options A (weight 1) and B (weight 0),
// both tagged category X.
func twoSectionCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]models.Section{
		{ID: 1, Name: "Section 1", OrderIndex: 1,
			Questions: []models.Question{fixtureQuestion(101, 1)}},
		{ID: 2, Name: "Section 2", OrderIndex: 2,
			Questions: []models.Question{fixtureQuestion(201, 2)}},
	})
	require.NoError(t, err)
	return cat
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewService(store, twoSectionCatalog(t)), store
}

func TestStartCreatesSessionAndResumes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Start(ctx, 1)
	require.NoError(t, err)
	assert.False(t, first.Resumed)
	assert.Equal(t, models.SessionInProgress, first.Status)
	assert.Equal(t, 2, first.TotalSections)
	assert.Equal(t, 2, first.TotalQuestions)
	assert.NotEmpty(t, first.SessionID)

	second, err := svc.Start(ctx, 1)
	require.NoError(t, err)
	assert.True(t, second.Resumed)
	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestStartAfterCompletionCreatesNewSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := completeFullRun(t, svc, 1)

	again, err := svc.Start(ctx, 1)
	require.NoError(t, err)
	assert.False(t, again.Resumed)
	assert.NotEqual(t, first, again.SessionID)
}

// completeFullRun starts a session for the user, submits both sections with
// option A then option B, and completes it. Returns the session id.
func completeFullRun(t *testing.T, svc *Service, userID int64) string {
	t.Helper()
	ctx := context.Background()

	started, err := svc.Start(ctx, userID)
	require.NoError(t, err)

	_, err = svc.SubmitSection(ctx, userID, 1,
		[]models.SectionAnswer{{QuestionID: 101, OptionKey: "A"}})
	require.NoError(t, err)

	_, err = svc.SubmitSection(ctx, userID, 2,
		[]models.SectionAnswer{{QuestionID: 201, OptionKey: "B"}})
	require.NoError(t, err)

	_, _, err = svc.Complete(ctx, userID, started.SessionID)
	require.NoError(t, err)
	return started.SessionID
}

func TestSubmitSectionsInOrderAndComplete(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, 1)
	require.NoError(t, err)

	resp, err := svc.SubmitSection(ctx, 1, 1,
		[]models.SectionAnswer{{QuestionID: 101, OptionKey: "A"}})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, resp.RemainingSections)
	assert.False(t, resp.ReadyToComplete)

	resp, err = svc.SubmitSection(ctx, 1, 2,
		[]models.SectionAnswer{{QuestionID: 201, OptionKey: "B"}})
	require.NoError(t, err)
	assert.Empty(t, resp.RemainingSections)
	assert.True(t, resp.ReadyToComplete)

	profile, already, err := svc.Complete(ctx, 1, started.SessionID)
	require.NoError(t, err)
	assert.False(t, already)
	require.Len(t, profile.Categories, 1)
	assert.Equal(t, models.CategoryScore{Category: "X", Total: 1, Count: 2}, profile.Categories[0])

	// Completing again returns the stored profile untouched.
	again, already, err := svc.Complete(ctx, 1, started.SessionID)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, profile, again)

	answers, err := store.Answers(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Len(t, answers, 2)
}

func TestSubmitOutOfOrder(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, 1)
	require.NoError(t, err)

	_, err = svc.SubmitSection(ctx, 1, 2,
		[]models.SectionAnswer{{QuestionID: 201, OptionKey: "A"}})
	assert.ErrorIs(t, err, ErrOutOfOrderSubmission)

	answers, err := store.Answers(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Empty(t, answers, "rejected submission must not persist answers")
}

func TestSubmitSameSectionTwice(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, 1)
	require.NoError(t, err)

	_, err = svc.SubmitSection(ctx, 1, 1,
		[]models.SectionAnswer{{QuestionID: 101, OptionKey: "A"}})
	require.NoError(t, err)

	_, err = svc.SubmitSection(ctx, 1, 1,
		[]models.SectionAnswer{{QuestionID: 101, OptionKey: "B"}})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	answers, err := store.Answers(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Len(t, answers, 1, "only the first submission's answers persist")
}

func TestSubmitAnswerValidation(t *testing.T) {
	tests := []struct {
		name    string
		answers []models.SectionAnswer
	}{
		{"no answers", nil},
		{"missing question", []models.SectionAnswer{{QuestionID: 999, OptionKey: "A"}}},
		{"unknown option", []models.SectionAnswer{{QuestionID: 101, OptionKey: "Z"}}},
		{"question from other section", []models.SectionAnswer{{QuestionID: 201, OptionKey: "A"}}},
		{"duplicate question", []models.SectionAnswer{
			{QuestionID: 101, OptionKey: "A"},
			{QuestionID: 101, OptionKey: "B"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			ctx := context.Background()

			started, err := svc.Start(ctx, 1)
			require.NoError(t, err)

			_, err = svc.SubmitSection(ctx, 1, 1, tt.answers)
			assert.ErrorIs(t, err, ErrIncompleteAnswerSet)

			answers, err := store.Answers(ctx, started.SessionID)
			require.NoError(t, err)
			assert.Empty(t, answers)
		})
	}
}

func TestCompleteWithSectionsRemaining(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, 1)
	require.NoError(t, err)

	_, _, err = svc.Complete(ctx, 1, started.SessionID)
	assert.ErrorIs(t, err, ErrSectionsRemaining)

	_, err = svc.SubmitSection(ctx, 1, 1,
		[]models.SectionAnswer{{QuestionID: 101, OptionKey: "A"}})
	require.NoError(t, err)

	_, _, err = svc.Complete(ctx, 1, started.SessionID)
	assert.ErrorIs(t, err, ErrSectionsRemaining)
}

func TestResultAccess(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sessionID := completeFullRun(t, svc, 1)

	owner, err := svc.Result(ctx, 1, models.RoleStudent, sessionID)
	require.NoError(t, err)
	require.NotNil(t, owner.Profile)

	_, err = svc.Result(ctx, 2, models.RoleStudent, sessionID)
	assert.ErrorIs(t, err, ErrForbidden)

	counsellor, err := svc.Result(ctx, 2, models.RoleCounsellor, sessionID)
	require.NoError(t, err)
	assert.Equal(t, owner.Profile, counsellor.Profile)

	_, err = svc.Result(ctx, 1, models.RoleStudent, "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResultBeforeCompletion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Result(ctx, 1, models.RoleStudent, started.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotCompleted)
}

func TestSectionQuestionsLockedUntilPriorSubmitted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, 1)
	require.NoError(t, err)

	_, err = svc.SectionQuestions(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrSectionLocked)

	first, err := svc.SectionQuestions(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, first.Questions, 1)
	for _, opt := range first.Questions[0].Options {
		assert.NotEmpty(t, opt.Key)
		assert.NotEmpty(t, opt.Label)
	}

	_, err = svc.SubmitSection(ctx, 1, 1,
		[]models.SectionAnswer{{QuestionID: 101, OptionKey: "A"}})
	require.NoError(t, err)

	_, err = svc.SectionQuestions(ctx, 1, 2)
	assert.NoError(t, err)

	// Submitted sections stay readable.
	_, err = svc.SectionQuestions(ctx, 1, 1)
	assert.NoError(t, err)

	_, err = svc.SectionQuestions(ctx, 1, 99)
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestStatusReportsProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	started, err := svc.Start(ctx, 1)
	require.NoError(t, err)

	status, err := svc.Status(ctx, 1, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionInProgress, status.Status)
	assert.Empty(t, status.SubmittedSections)
	assert.Equal(t, 1, status.CurrentSection)

	_, err = svc.SubmitSection(ctx, 1, 1,
		[]models.SectionAnswer{{QuestionID: 101, OptionKey: "A"}})
	require.NoError(t, err)

	status, err = svc.Status(ctx, 1, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, status.SubmittedSections)
	assert.Equal(t, 2, status.CurrentSection)

	_, err = svc.Status(ctx, 2, started.SessionID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSectionListStates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// No session yet: only the first section is available.
	list, err := svc.SectionList(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list.Sections, 2)
	assert.Empty(t, list.SessionID)
	assert.Equal(t, models.SectionAvailable, list.Sections[0].State)
	assert.Equal(t, models.SectionLocked, list.Sections[1].State)

	started, err := svc.Start(ctx, 1)
	require.NoError(t, err)
	_, err = svc.SubmitSection(ctx, 1, 1,
		[]models.SectionAnswer{{QuestionID: 101, OptionKey: "A"}})
	require.NoError(t, err)

	list, err = svc.SectionList(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, started.SessionID, list.SessionID)
	assert.Equal(t, models.SectionCompleted, list.Sections[0].State)
	assert.Equal(t, models.SectionAvailable, list.Sections[1].State)
	assert.Equal(t, 2, list.CurrentSection)
}

func TestListResults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	empty, err := svc.ListResults(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.NotNil(t, empty.Results)

	first := completeFullRun(t, svc, 1)
	second := completeFullRun(t, svc, 1)

	list, err := svc.ListResults(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	ids := []string{list.Results[0].SessionID, list.Results[1].SessionID}
	assert.ElementsMatch(t, []string{first, second}, ids)

	other, err := svc.ListResults(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, other.Total)
}
