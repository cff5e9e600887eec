package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/router"
	"github.com/abhisek/iotfit/internal/screens/quiz"
	"github.com/abhisek/iotfit/internal/screens/results"
	"github.com/abhisek/iotfit/internal/scoring"
)

func testModel() AppModel {
	m := newAppModel(Options{Deps: quiz.Deps{Bank: assessment.Default()}})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestAppModel_WindowSize(t *testing.T) {
	m := testModel()
	if m.width != 100 || m.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", m.width, m.height)
	}
	if m.router.Active().Title() != "Welcome" {
		t.Errorf("root = %q, want Welcome", m.router.Active().Title())
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestAppModel_EscAtRootDoesNothing(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command at the root")
	}
}

func TestAppModel_EscPopsResults(t *testing.T) {
	m := testModel()
	m.router.Push(results.New(scoring.Outcome{}))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestAppModel_EscForwardedToQuiz(t *testing.T) {
	m := testModel()
	qs := quiz.New(quiz.Deps{Bank: assessment.Default()}, "")
	m.router.Push(qs)

	// Answer once so Esc asks for confirmation instead of leaving.
	m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Errorf("expected the quiz to handle Esc without a command, got %T", cmd())
	}
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.router.Depth())
	}
	if hints := m.footerHints(m.router.Active()); len(hints) != 2 || hints[0].Key != "Y" {
		t.Errorf("expected confirmation hints, got %+v", hints)
	}
}

func TestAppModel_FooterHintsFallback(t *testing.T) {
	m := testModel()
	if hints := m.footerHints(nil); len(hints) != 3 {
		t.Errorf("root fallback hints = %d, want 3", len(hints))
	}
}
