package session

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/scoring"
)

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLabel sets a free-form label (usually the learner's name).
func WithLabel(label string) Option {
	return func(s *Session) { s.label = label }
}

// Session tracks an in-progress attempt: the cursor over the flattened
// question list and the response log. Re-answering a question drops the
// prior entry and appends the new one, so the log holds at most one entry
// per question. A Session is not safe for concurrent use.
type Session struct {
	bank      *assessment.Bank
	questions []assessment.Question
	now       func() time.Time

	id        string
	label     string
	startedAt time.Time
	phase     Phase
	cursor    int
	responses []scoring.Response
}

// New creates a session over bank in the intro phase.
func New(bank *assessment.Bank, opts ...Option) *Session {
	s := &Session{
		bank:      bank,
		questions: bank.Questions(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a fresh attempt with a new session id.
func (s *Session) Start() {
	s.id = uuid.New().String()
	s.startedAt = s.now()
	s.phase = PhaseActive
	s.cursor = 0
	s.responses = nil
}

// Reset discards all progress and returns to the intro phase.
func (s *Session) Reset() {
	s.id = ""
	s.startedAt = time.Time{}
	s.phase = PhaseIntro
	s.cursor = 0
	s.responses = nil
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Label() string        { return s.label }
func (s *Session) SetLabel(l string)    { s.label = l }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) Phase() Phase         { return s.phase }
func (s *Session) Index() int           { return s.cursor }
func (s *Session) Total() int           { return len(s.questions) }

// Current returns the question under the cursor.
func (s *Session) Current() (assessment.Question, bool) {
	if s.cursor < 0 || s.cursor >= len(s.questions) {
		return assessment.Question{}, false
	}
	return s.questions[s.cursor], true
}

// Section returns the section of the current question.
func (s *Session) Section() (assessment.Section, bool) {
	q, ok := s.Current()
	if !ok {
		return assessment.Section{}, false
	}
	return s.bank.SectionOf(q.ID)
}

// Answer records v for the current question.
func (s *Session) Answer(v scoring.Value) error {
	q, ok := s.Current()
	if !ok {
		return ErrNotActive
	}
	return s.AnswerQuestion(q.ID, v)
}

// AnswerQuestion records v for the given question id.
func (s *Session) AnswerQuestion(id string, v scoring.Value) error {
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	if _, ok := s.bank.Lookup(id); !ok {
		return fmt.Errorf("answer: %w: %q", assessment.ErrUnknownQuestion, id)
	}
	s.responses = slices.DeleteFunc(s.responses, func(r scoring.Response) bool {
		return r.QuestionID == id
	})
	s.responses = append(s.responses, scoring.Response{
		QuestionID: id,
		Value:      v,
		Timestamp:  s.now(),
	})
	return nil
}

// ResponseFor returns the recorded answer for a question.
func (s *Session) ResponseFor(id string) (scoring.Value, bool) {
	for _, r := range s.responses {
		if r.QuestionID == id {
			return r.Value, true
		}
	}
	return scoring.Value{}, false
}

// CanProceed reports whether the current question has been answered.
func (s *Session) CanProceed() bool {
	q, ok := s.Current()
	if !ok || s.phase != PhaseActive {
		return false
	}
	_, answered := s.ResponseFor(q.ID)
	return answered
}

// IsLast reports whether the cursor is on the final question.
func (s *Session) IsLast() bool {
	return s.cursor == len(s.questions)-1
}

// Next moves to the following question. It does nothing unless the current
// question is answered and another question follows.
func (s *Session) Next() bool {
	if !s.CanProceed() || s.IsLast() {
		return false
	}
	s.cursor++
	return true
}

// Previous moves back one question.
func (s *Session) Previous() bool {
	if s.phase != PhaseActive || s.cursor == 0 {
		return false
	}
	s.cursor--
	return true
}

// Progress returns the percentage position of the cursor, counting the
// current question as reached.
func (s *Session) Progress() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(math.Round(float64(s.cursor+1) / float64(len(s.questions)) * 100))
}

// Answered returns the number of distinct questions answered.
func (s *Session) Answered() int { return len(s.responses) }

// Responses returns a copy of the response log in answer order.
func (s *Session) Responses() []scoring.Response {
	return slices.Clone(s.responses)
}

// Complete scores the response log and moves to the complete phase.
func (s *Session) Complete(scorer *scoring.Scorer) (Completed, error) {
	if s.phase != PhaseActive {
		return Completed{}, ErrNotActive
	}
	if missing := len(s.questions) - len(s.responses); missing > 0 {
		return Completed{}, fmt.Errorf("%w: %d of %d questions unanswered", ErrIncomplete, missing, len(s.questions))
	}

	responses := s.Responses()
	c := Completed{
		SessionID:   s.id,
		Label:       s.label,
		StartedAt:   s.startedAt,
		CompletedAt: s.now(),
		Responses:   responses,
		Outcome:     scorer.Score(responses),
	}
	s.phase = PhaseComplete
	return c, nil
}
