package catalog

import (
	"database/sql"
	"fmt"

	"github.com/joshi510/careerbackend/internal/models"
)

// Load reads the full catalog from the database. Called once at startup;
// the result is handed to New and never re-read.
func Load(db *sql.DB) ([]models.Section, error) {
	rows, err := db.Query(
		`SELECT id, name, COALESCE(description, ''), order_index, time_limit_seconds, created_at
		 FROM sections ORDER BY order_index`,
	)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	byID := make(map[int64]int)
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(&sec.ID, &sec.Name, &sec.Description, &sec.OrderIndex,
			&sec.TimeLimitSeconds, &sec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		byID[sec.ID] = len(sections)
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}

	qRows, err := db.Query(
		`SELECT id, section_id, prompt, order_index FROM questions ORDER BY section_id, order_index`,
	)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer qRows.Close()

	questionPos := make(map[int64][2]int)
	for qRows.Next() {
		var q models.Question
		if err := qRows.Scan(&q.ID, &q.SectionID, &q.Prompt, &q.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		idx, ok := byID[q.SectionID]
		if !ok {
			return nil, fmt.Errorf("question %d references unknown section %d", q.ID, q.SectionID)
		}
		questionPos[q.ID] = [2]int{idx, len(sections[idx].Questions)}
		sections[idx].Questions = append(sections[idx].Questions, q)
	}
	if err := qRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	oRows, err := db.Query(
		`SELECT id, question_id, option_key, label, weight, category
		 FROM question_options ORDER BY question_id, option_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	defer oRows.Close()

	for oRows.Next() {
		var opt models.Option
		if err := oRows.Scan(&opt.ID, &opt.QuestionID, &opt.Key, &opt.Label,
			&opt.Weight, &opt.Category); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		pos, ok := questionPos[opt.QuestionID]
		if !ok {
			return nil, fmt.Errorf("option %d references unknown question %d", opt.ID, opt.QuestionID)
		}
		q := &sections[pos[0]].Questions[pos[1]]
		q.Options = append(q.Options, opt)
	}
	if err := oRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate options: %w", err)
	}

	return sections, nil
}
