package assessment

import (
	"fmt"
	"slices"
)

// Bank is an immutable, validated question bank with precomputed indices.
// All accessors return copies.
type Bank struct {
	sections    []Section
	questions   []Question
	byID        map[string]int
	byCategory  map[Category][]Question
	byDimension map[Dimension][]Question
	position    map[string]int
}

// NewBank validates the sections and builds the indices. Every structural
// problem is reported at once in a *BankError.
func NewBank(sections []Section) (*Bank, error) {
	if err := validateSections(sections); err != nil {
		return nil, err
	}

	b := &Bank{
		sections:    make([]Section, len(sections)),
		byID:        make(map[string]int),
		byCategory:  make(map[Category][]Question),
		byDimension: make(map[Dimension][]Question),
		position:    make(map[string]int),
	}

	for i, sec := range sections {
		b.sections[i] = cloneSection(sec)
		for _, q := range sec.Questions {
			q = cloneQuestion(q)
			b.byID[q.ID] = len(b.questions)
			b.position[q.ID] = len(b.questions)
			b.questions = append(b.questions, q)
			b.byCategory[q.Category] = append(b.byCategory[q.Category], q)
			if q.Dimension != DimensionNone {
				b.byDimension[q.Dimension] = append(b.byDimension[q.Dimension], q)
			}
		}
	}

	return b, nil
}

// Lookup returns a question by ID.
func (b *Bank) Lookup(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return cloneQuestion(b.questions[i]), true
}

// Get is like Lookup but returns ErrUnknownQuestion for missing ids.
func (b *Bank) Get(id string) (Question, error) {
	q, ok := b.Lookup(id)
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	return q, nil
}

// Questions returns every question flattened in section order.
func (b *Bank) Questions() []Question {
	return cloneQuestions(b.questions)
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int { return len(b.questions) }

// Index returns the 0-based position of a question in the flattened order,
// or -1 if the id is unknown.
func (b *Bank) Index(id string) int {
	i, ok := b.position[id]
	if !ok {
		return -1
	}
	return i
}

// ByCategory returns the questions of one category in bank order.
func (b *Bank) ByCategory(c Category) []Question {
	return cloneQuestions(b.byCategory[c])
}

// ByDimension returns the readiness questions of one dimension in bank order.
func (b *Bank) ByDimension(d Dimension) []Question {
	return cloneQuestions(b.byDimension[d])
}

// Sections returns the sections in presentation order, including sections
// without questions.
func (b *Bank) Sections() []Section {
	out := make([]Section, len(b.sections))
	for i, s := range b.sections {
		out[i] = cloneSection(s)
	}
	return out
}

// SectionOf returns the section containing the given question.
func (b *Bank) SectionOf(id string) (Section, bool) {
	for _, s := range b.sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return cloneSection(s), true
			}
		}
	}
	return Section{}, false
}

// TotalMinutes sums the time estimates of all sections.
func (b *Bank) TotalMinutes() int {
	total := 0
	for _, s := range b.sections {
		total += s.TimeMinutes
	}
	return total
}

func cloneQuestion(q Question) Question {
	q.Options = slices.Clone(q.Options)
	return q
}

func cloneQuestions(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = cloneQuestion(q)
	}
	return out
}

func cloneSection(s Section) Section {
	s.Questions = cloneQuestions(s.Questions)
	return s
}
