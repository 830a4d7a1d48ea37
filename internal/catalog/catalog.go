package catalog

import (
	"fmt"
	"sort"

	"github.com/joshi510/careerbackend/internal/models"
)

// Catalog is the full set of sections, questions, and options, indexed for
// lookup. It is built once at startup and treated as read-only afterwards;
// handlers and services receive it explicitly rather than through a global.
type Catalog struct {
	sections  []models.Section
	byOrder   map[int]*models.Section
	questions map[int64]questionRef
}

type questionRef struct {
	question     *models.Question
	sectionOrder int
}

// New validates the section set and builds the lookup indexes. Section
// order indexes must be contiguous starting at 1, and every question must
// carry at least two options with unique keys.
func New(sections []models.Section) (*Catalog, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("catalog has no sections")
	}

	sorted := make([]models.Section, len(sections))
	copy(sorted, sections)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})

	c := &Catalog{
		sections:  sorted,
		byOrder:   make(map[int]*models.Section, len(sorted)),
		questions: make(map[int64]questionRef),
	}

	for i := range c.sections {
		sec := &c.sections[i]
		if sec.OrderIndex != i+1 {
			return nil, fmt.Errorf("section order indexes must be contiguous from 1, got %d at position %d", sec.OrderIndex, i)
		}
		if len(sec.Questions) == 0 {
			return nil, fmt.Errorf("section %d (%s) has no questions", sec.OrderIndex, sec.Name)
		}
		c.byOrder[sec.OrderIndex] = sec

		for j := range sec.Questions {
			q := &sec.Questions[j]
			if len(q.Options) < 2 {
				return nil, fmt.Errorf("question %d has fewer than two options", q.ID)
			}
			keys := make(map[string]bool, len(q.Options))
			for _, opt := range q.Options {
				if keys[opt.Key] {
					return nil, fmt.Errorf("question %d has duplicate option key %q", q.ID, opt.Key)
				}
				keys[opt.Key] = true
			}
			if _, dup := c.questions[q.ID]; dup {
				return nil, fmt.Errorf("duplicate question id %d", q.ID)
			}
			c.questions[q.ID] = questionRef{question: q, sectionOrder: sec.OrderIndex}
		}
	}

	return c, nil
}

func (c *Catalog) TotalSections() int {
	return len(c.sections)
}

func (c *Catalog) TotalQuestions() int {
	return len(c.questions)
}

// Sections returns the sections in display order. Callers must not mutate
// the returned slice.
func (c *Catalog) Sections() []models.Section {
	return c.sections
}

func (c *Catalog) SectionByOrder(order int) (*models.Section, bool) {
	sec, ok := c.byOrder[order]
	return sec, ok
}

// Question resolves a question id to the question and the order index of
// its section.
func (c *Catalog) Question(id int64) (*models.Question, int, bool) {
	ref, ok := c.questions[id]
	if !ok {
		return nil, 0, false
	}
	return ref.question, ref.sectionOrder, true
}

// Option resolves an option key on a question.
func (c *Catalog) Option(questionID int64, key string) (*models.Option, bool) {
	ref, ok := c.questions[questionID]
	if !ok {
		return nil, false
	}
	for i := range ref.question.Options {
		if ref.question.Options[i].Key == key {
			return &ref.question.Options[i], true
		}
	}
	return nil, false
}

// ServeSection strips scoring data from a section's questions for delivery
// to a test taker.
func (c *Catalog) ServeSection(order int) (*models.SectionQuestionsResponse, bool) {
	sec, ok := c.byOrder[order]
	if !ok {
		return nil, false
	}

	served := make([]models.ServedQuestion, 0, len(sec.Questions))
	for _, q := range sec.Questions {
		opts := make([]models.ServedOption, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, models.ServedOption{Key: o.Key, Label: o.Label})
		}
		served = append(served, models.ServedQuestion{
			QuestionID: q.ID,
			Prompt:     q.Prompt,
			Options:    opts,
		})
	}

	return &models.SectionQuestionsResponse{
		SectionOrder: sec.OrderIndex,
		SectionName:  sec.Name,
		Questions:    served,
	}, true
}

// SectionNames maps order index to section name, used when building
// interpretation prompts.
func (c *Catalog) SectionNames() map[int]string {
	names := make(map[int]string, len(c.sections))
	for _, sec := range c.sections {
		names[sec.OrderIndex] = sec.Name
	}
	return names
}
