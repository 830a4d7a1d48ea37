package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/joshi510/careerbackend/internal/models"
)

// Store persists sessions, answers, scores, and interpretations. SubmitSection
// and CompleteSession are conditional on the session version the caller read;
// a lost race surfaces as ErrVersionConflict and the caller decides whether to
// re-read or reject.
type Store interface {
	CreateSession(ctx context.Context, s *models.TestSession) error
	GetSession(ctx context.Context, id string) (*models.TestSession, error)
	OpenSessionForUser(ctx context.Context, userID int64) (*models.TestSession, error)
	SubmitSection(ctx context.Context, s *models.TestSession, order int, answers []models.AnswerRecord) error
	CompleteSession(ctx context.Context, s *models.TestSession, profile *models.ResultProfile) error
	Answers(ctx context.Context, sessionID string) ([]models.AnswerRecord, error)
	Profile(ctx context.Context, sessionID string) (*models.ResultProfile, error)
	Interpretation(ctx context.Context, sessionID string) (*models.Interpretation, error)
	SaveInterpretation(ctx context.Context, in *models.Interpretation) error
	ListResults(ctx context.Context, userID int64) ([]models.ResultSummary, error)
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateSession(ctx context.Context, sess *models.TestSession) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO test_sessions (id, user_id, status, version, created_at)
		 VALUES ($1, $2, $3, 0, $4)`,
		sess.ID, sess.UserID, sess.Status, sess.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrOpenSessionExists
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (*models.TestSession, error) {
	return s.scanSession(ctx,
		`SELECT id, user_id, status, version, created_at, completed_at
		 FROM test_sessions WHERE id = $1`, id)
}

// OpenSessionForUser returns the user's non-completed session, or
// ErrSessionNotFound when there is none. The partial unique index on
// test_sessions guarantees at most one exists.
func (s *PostgresStore) OpenSessionForUser(ctx context.Context, userID int64) (*models.TestSession, error) {
	return s.scanSession(ctx,
		`SELECT id, user_id, status, version, created_at, completed_at
		 FROM test_sessions WHERE user_id = $1 AND status <> 'completed'`, userID)
}

func (s *PostgresStore) scanSession(ctx context.Context, query string, arg interface{}) (*models.TestSession, error) {
	var sess models.TestSession
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&sess.ID, &sess.UserID, &sess.Status, &sess.Version, &sess.CreatedAt, &sess.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT section_order FROM session_sections WHERE session_id = $1 ORDER BY section_order`,
		sess.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("query submitted sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var order int
		if err := rows.Scan(&order); err != nil {
			return nil, fmt.Errorf("scan submitted section: %w", err)
		}
		sess.SubmittedSections = append(sess.SubmittedSections, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submitted sections: %w", err)
	}
	return &sess, nil
}

// SubmitSection records one section's answers. The version bump and the
// answer inserts share a transaction, so a session never ends up with a
// partially written section.
func (s *PostgresStore) SubmitSection(ctx context.Context, sess *models.TestSession, order int, answers []models.AnswerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE test_sessions SET version = version + 1
		 WHERE id = $1 AND version = $2 AND status = $3`,
		sess.ID, sess.Version, models.SessionInProgress,
	)
	if err != nil {
		return fmt.Errorf("bump session version: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return ErrVersionConflict
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO session_sections (session_id, section_order, submitted_at)
		 VALUES ($1, $2, $3)`,
		sess.ID, order, answers[0].CreatedAt,
	); err != nil {
		return fmt.Errorf("insert session section: %w", err)
	}

	for _, a := range answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO answers (session_id, question_id, option_key, weight, category, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			a.SessionID, a.QuestionID, a.OptionKey, a.Weight, a.Category, a.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert answer for question %d: %w", a.QuestionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submit: %w", err)
	}
	sess.Version++
	sess.SubmittedSections = append(sess.SubmittedSections, order)
	return nil
}

// CompleteSession flips the session to completed and persists the computed
// profile in the same transaction.
func (s *PostgresStore) CompleteSession(ctx context.Context, sess *models.TestSession, profile *models.ResultProfile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE test_sessions SET status = $1, completed_at = $2, version = version + 1
		 WHERE id = $3 AND version = $4 AND status = $5`,
		models.SessionCompleted, sess.CompletedAt, sess.ID, sess.Version, models.SessionInProgress,
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return ErrVersionConflict
	}

	totalCount := 0
	for _, cs := range profile.Categories {
		totalCount += cs.Count
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scores (session_id, dimension, score, answer_count, computed_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			profile.SessionID, cs.Category, float64(cs.Total), cs.Count, profile.ComputedAt,
		); err != nil {
			return fmt.Errorf("insert score %s: %w", cs.Category, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scores (session_id, dimension, score, answer_count, computed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		profile.SessionID, overallDimension, profile.OverallPercent, totalCount, profile.ComputedAt,
	); err != nil {
		return fmt.Errorf("insert overall score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit complete: %w", err)
	}
	sess.Version++
	sess.Status = models.SessionCompleted
	return nil
}

// overallDimension is the scores row holding the overall percent. Category
// names come from question options and never collide with it.
const overallDimension = "overall"

func (s *PostgresStore) Answers(ctx context.Context, sessionID string) ([]models.AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, question_id, option_key, weight, category, created_at
		 FROM answers WHERE session_id = $1 ORDER BY question_id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var answers []models.AnswerRecord
	for rows.Next() {
		var a models.AnswerRecord
		if err := rows.Scan(&a.SessionID, &a.QuestionID, &a.OptionKey, &a.Weight, &a.Category, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return answers, nil
}

// Profile reconstructs the persisted profile from the scores table. It
// returns (nil, nil) when no scores exist for the session.
func (s *PostgresStore) Profile(ctx context.Context, sessionID string) (*models.ResultProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dimension, score, answer_count, computed_at
		 FROM scores WHERE session_id = $1 ORDER BY dimension`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var profile *models.ResultProfile
	for rows.Next() {
		var (
			dimension  string
			score      float64
			count      int
			computedAt sql.NullTime
		)
		if err := rows.Scan(&dimension, &score, &count, &computedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if profile == nil {
			profile = &models.ResultProfile{SessionID: sessionID}
		}
		if computedAt.Valid {
			profile.ComputedAt = computedAt.Time
		}
		if dimension == overallDimension {
			profile.OverallPercent = score
			continue
		}
		profile.Categories = append(profile.Categories, models.CategoryScore{
			Category: dimension,
			Total:    int(score),
			Count:    count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	if profile != nil {
		profile.SortCategories()
	}
	return profile, nil
}

// Interpretation returns (nil, nil) when no interpretation has been stored.
func (s *PostgresStore) Interpretation(ctx context.Context, sessionID string) (*models.Interpretation, error) {
	var in models.Interpretation
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, summary, strengths, growth_areas, ai_generated, generated_at
		 FROM interpretations WHERE session_id = $1`,
		sessionID,
	).Scan(&in.SessionID, &in.Summary, pq.Array(&in.Strengths), pq.Array(&in.GrowthAreas), &in.AIGenerated, &in.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query interpretation: %w", err)
	}
	return &in, nil
}

// SaveInterpretation stores the interpretation unless one already exists;
// the first writer wins and later writers silently keep the stored row.
func (s *PostgresStore) SaveInterpretation(ctx context.Context, in *models.Interpretation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interpretations (session_id, summary, strengths, growth_areas, ai_generated, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id) DO NOTHING`,
		in.SessionID, in.Summary, pq.Array(in.Strengths), pq.Array(in.GrowthAreas), in.AIGenerated, in.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("insert interpretation: %w", err)
	}
	return nil
}

// ListResults returns one summary per completed session for the user, most
// recently completed first.
func (s *PostgresStore) ListResults(ctx context.Context, userID int64) ([]models.ResultSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts.id, ts.completed_at,
		        COALESCE((SELECT sc.score FROM scores sc
		                  WHERE sc.session_id = ts.id AND sc.dimension = $2), 0),
		        EXISTS (SELECT 1 FROM interpretations i WHERE i.session_id = ts.id)
		 FROM test_sessions ts
		 WHERE ts.user_id = $1 AND ts.status = 'completed'
		 ORDER BY ts.completed_at DESC`,
		userID, overallDimension,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var summaries []models.ResultSummary
	for rows.Next() {
		var sum models.ResultSummary
		if err := rows.Scan(&sum.SessionID, &sum.CompletedAt, &sum.OverallPercent, &sum.HasInterpretation); err != nil {
			return nil, fmt.Errorf("scan result summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return summaries, nil
}
