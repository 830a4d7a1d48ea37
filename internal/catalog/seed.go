package catalog

import (
	"database/sql"
	"fmt"
)

type seedSection struct {
	name        string
	description string
	category    string
	prompts     []string
}

// Default assessment: five sections of seven Likert-scale statements each.
// Option weights run 1 (strongly disagree) through 5 (strongly agree) and
// every option in a section carries the section's category tag.
var seedSections = []seedSection{
	{
		name:        "Section 1: Intelligence Test (Cognitive Reasoning)",
		description: "Logical Reasoning, Numerical Reasoning, Verbal Reasoning, Abstract Reasoning",
		category:    "cognitive",
		prompts: []string{
			"I can usually spot the pattern in a sequence of numbers or shapes quickly.",
			"When an argument is presented to me, I notice gaps in its logic.",
			"I enjoy puzzles that require working through several steps in my head.",
			"I can follow a complex set of written instructions without rereading them.",
			"Estimating quantities or proportions comes naturally to me.",
			"I find it easy to explain my reasoning to someone who disagrees with me.",
			"I can hold several possibilities in mind and compare them before deciding.",
		},
	},
	{
		name:        "Section 2: Aptitude Test",
		description: "Numerical Aptitude, Logical Aptitude, Verbal Aptitude, Spatial/Mechanical Aptitude",
		category:    "aptitude",
		prompts: []string{
			"I work through arithmetic faster than most people I know.",
			"I can picture how an object would look rotated or assembled differently.",
			"Word problems are easier for me than for most of my classmates.",
			"I pick up the rules of a new game or tool after a single demonstration.",
			"I notice when a chart or table misrepresents the numbers behind it.",
			"I can figure out how a mechanism works by studying it for a while.",
			"Given a formula, I can apply it correctly to an unfamiliar problem.",
		},
	},
	{
		name:        "Section 3: Study Habits",
		description: "Concentration, Consistency, Time Management, Exam Preparedness, Self-discipline",
		category:    "study_habits",
		prompts: []string{
			"I keep a regular study schedule even when no deadline is near.",
			"I can concentrate for a full study session without checking my phone.",
			"I start preparing for exams well before the final week.",
			"I review my notes within a day or two of taking them.",
			"When I plan my day, I usually finish what I set out to do.",
			"I study in a space I have deliberately set up to avoid distraction.",
			"After a poor test result, I change how I prepare rather than just trying harder.",
		},
	},
	{
		name:        "Section 4: Learning Style",
		description: "Visual, Auditory, Reading/Writing, Kinesthetic",
		category:    "learning_style",
		prompts: []string{
			"I remember material best when I turn it into diagrams or sketches.",
			"Hearing an idea explained aloud helps me more than reading it.",
			"Writing my own summary is how I make a topic stick.",
			"I learn fastest when I can try something hands-on immediately.",
			"I adapt my study method to the kind of material I am learning.",
			"I can tell which way of studying is working for me and which is not.",
			"Teaching a topic to someone else helps me master it.",
		},
	},
	{
		name:        "Section 5: Career Interest (RIASEC)",
		description: "Realistic, Investigative, Artistic, Social, Enterprising, Conventional",
		category:    "career_interest",
		prompts: []string{
			"I seek out information about careers I might want to pursue.",
			"I can name two or three fields of work that genuinely excite me.",
			"I have tried activities or projects related to careers that interest me.",
			"I enjoy talking with people about what their jobs are actually like.",
			"I know which school subjects connect to the careers I am considering.",
			"I would take an optional course just because it relates to a career interest.",
			"When I imagine my working life, I have a concrete picture of it.",
		},
	},
}

var likertOptions = []struct {
	key    string
	label  string
	weight int
}{
	{"A", "Strongly Disagree", 1},
	{"B", "Disagree", 2},
	{"C", "Neutral", 3},
	{"D", "Agree", 4},
	{"E", "Strongly Agree", 5},
}

// Seed inserts the default catalog when the sections table is empty. A
// populated catalog is left untouched.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sections`).Scan(&count); err != nil {
		return fmt.Errorf("count sections: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, sec := range seedSections {
		var sectionID int64
		err := tx.QueryRow(
			`INSERT INTO sections (name, description, order_index, time_limit_seconds)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			sec.name, sec.description, i+1, 420,
		).Scan(&sectionID)
		if err != nil {
			return fmt.Errorf("insert section %d: %w", i+1, err)
		}

		for j, prompt := range sec.prompts {
			var questionID int64
			err := tx.QueryRow(
				`INSERT INTO questions (section_id, prompt, order_index)
				 VALUES ($1, $2, $3) RETURNING id`,
				sectionID, prompt, j+1,
			).Scan(&questionID)
			if err != nil {
				return fmt.Errorf("insert question: %w", err)
			}

			for _, opt := range likertOptions {
				_, err := tx.Exec(
					`INSERT INTO question_options (question_id, option_key, label, weight, category)
					 VALUES ($1, $2, $3, $4, $5)`,
					questionID, opt.key, opt.label, opt.weight, sec.category,
				)
				if err != nil {
					return fmt.Errorf("insert option: %w", err)
				}
			}
		}
	}

	return tx.Commit()
}
