package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/router"
	"github.com/abhisek/iotfit/internal/screen"
	"github.com/abhisek/iotfit/internal/screens/results"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/session"
	"github.com/abhisek/iotfit/internal/store"
	"github.com/abhisek/iotfit/internal/ui/components"
	"github.com/abhisek/iotfit/internal/ui/layout"
)

const saveTimeout = 5 * time.Second

// Deps are the services an interactive attempt needs. Results may be nil,
// in which case completed attempts are not persisted.
type Deps struct {
	Bank    *assessment.Bank
	Scorer  *scoring.Scorer
	Results store.ResultRepo
	Logger  *zap.Logger
	Clock   func() time.Time
}

// completedMsg is sent once a finished attempt has been persisted.
type completedMsg struct {
	Completed session.Completed
	Err       error
}

// QuizScreen serves the questions one at a time.
type QuizScreen struct {
	deps        Deps
	sess        *session.Session
	options     components.OptionList
	confirmQuit bool
	finishing   bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// New starts a fresh attempt labelled label.
func New(deps Deps, label string) *QuizScreen {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Scorer == nil {
		deps.Scorer = scoring.New(deps.Bank, deps.Logger)
	}

	opts := []session.Option{session.WithLabel(label)}
	if deps.Clock != nil {
		opts = append(opts, session.WithClock(deps.Clock))
	}

	s := &QuizScreen{
		deps: deps,
		sess: session.New(deps.Bank, opts...),
	}
	s.sess.Start()
	s.syncOptions()

	deps.Logger.Info("assessment started",
		zap.String("session_id", s.sess.ID()),
		zap.Int("questions", s.sess.Total()))
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "IoT Security Assessment"
}

func (s *QuizScreen) Status() string {
	return progressLabel(s.sess.Index(), s.sess.Total())
}

func (s *QuizScreen) InterceptsBack() bool {
	return true
}

// Session exposes the in-progress attempt.
func (s *QuizScreen) Session() *session.Session {
	return s.sess
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Discard answers"},
			{Key: "N", Description: "Keep going"},
		}
	}
	next := "Next"
	if s.sess.IsLast() {
		next = "Complete"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer & " + next},
		{Key: "←→", Description: "Previous/" + next},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case completedMsg:
		return s.handleCompleted(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.finishing {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.deps.Logger.Info("assessment abandoned",
				zap.String("session_id", s.sess.ID()),
				zap.Int("answered", s.sess.Answered()))
			s.sess.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.sess.Answered() == 0 {
			s.sess.Reset()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.confirmQuit = true
		return s, nil
	case "enter":
		s.record(s.options.Cursor)
		return s.advance()
	case "right", "l", "tab":
		return s.advance()
	case "left", "h", "shift+tab":
		if s.sess.Previous() {
			s.errMsg = ""
			s.syncOptions()
		}
		return s, nil
	}

	var picked bool
	s.options, picked = s.options.Update(msg)
	if picked {
		s.record(s.options.Chosen)
	}
	return s, nil
}

// record stores the option at index i as the answer to the current question.
func (s *QuizScreen) record(i int) {
	if i < 0 || i >= len(s.options.Options) {
		return
	}
	s.options.Chosen = i
	if err := s.sess.Answer(scoring.Int(s.options.Options[i].Value)); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
}

// advance moves to the next question, or completes the attempt on the last.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.sess.CanProceed() {
		return s, nil
	}
	if s.sess.IsLast() {
		return s.complete()
	}
	s.sess.Next()
	s.syncOptions()
	return s, nil
}

func (s *QuizScreen) complete() (screen.Screen, tea.Cmd) {
	c, err := s.sess.Complete(s.deps.Scorer)
	if err != nil {
		s.errMsg = completionError(err)
		return s, nil
	}
	s.finishing = true

	res := c.Outcome.Result
	s.deps.Logger.Info("assessment completed",
		zap.String("session_id", c.SessionID),
		zap.Int("overall_fit", res.OverallFit),
		zap.String("recommendation", string(res.Recommendation)),
		zap.Duration("duration", c.Duration()))

	repo := s.deps.Results
	return s, func() tea.Msg {
		if repo == nil {
			return completedMsg{Completed: c}
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return completedMsg{Completed: c, Err: repo.Save(ctx, store.RecordFrom(c))}
	}
}

func (s *QuizScreen) handleCompleted(msg completedMsg) (screen.Screen, tea.Cmd) {
	c := msg.Completed
	opts := []results.Option{
		results.WithLabel(c.Label),
		results.WithCompletedAt(c.CompletedAt),
	}
	if msg.Err != nil {
		s.deps.Logger.Warn("saving result failed",
			zap.String("session_id", c.SessionID), zap.Error(msg.Err))
		opts = append(opts, results.WithNotice("Result could not be saved to history"))
	}
	next := results.New(c.Outcome, opts...)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// syncOptions rebuilds the option list for the current question, restoring
// a previously recorded answer.
func (s *QuizScreen) syncOptions() {
	q, ok := s.sess.Current()
	if !ok {
		s.options = components.NewOptionList(nil, -1)
		return
	}
	choices := q.Choices()
	chosen := -1
	if v, ok := s.sess.ResponseFor(q.ID); ok {
		if f, ok := v.Float(); ok {
			chosen = components.IndexOfValue(choices, int(f))
		}
	}
	s.options = components.NewOptionList(choices, chosen)
}

func completionError(err error) string {
	if errors.Is(err, session.ErrIncomplete) {
		return "Some questions are still unanswered. Use ← to go back."
	}
	return err.Error()
}
