package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iotfit/internal/report"
	"github.com/abhisek/iotfit/internal/router"
	"github.com/abhisek/iotfit/internal/screen"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/ui/layout"
	"github.com/abhisek/iotfit/internal/ui/theme"
)

type exportedMsg struct {
	Path string
	Err  error
}

// Option configures a ResultsScreen.
type Option func(*ResultsScreen)

// WithLabel sets the name shown under the headline.
func WithLabel(label string) Option {
	return func(s *ResultsScreen) { s.label = label }
}

// WithCompletedAt sets the completion time shown under the headline.
func WithCompletedAt(t time.Time) Option {
	return func(s *ResultsScreen) { s.completedAt = t }
}

// WithNotice shows a one-line message above the dashboard.
func WithNotice(notice string) Option {
	return func(s *ResultsScreen) { s.notice = notice }
}

// WithExportDir sets where `x` writes the text report. Defaults to the
// working directory.
func WithExportDir(dir string) Option {
	return func(s *ResultsScreen) { s.exportDir = dir }
}

// ResultsScreen renders the scored dashboard.
type ResultsScreen struct {
	outcome     scoring.Outcome
	label       string
	completedAt time.Time
	notice      string
	exportDir   string
	offset      int
	lastHeight  int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.StatusProvider = (*ResultsScreen)(nil)

// New creates a results screen for an outcome.
func New(outcome scoring.Outcome, opts ...Option) *ResultsScreen {
	s := &ResultsScreen{outcome: outcome, exportDir: "."}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Assessment Results"
}

func (s *ResultsScreen) Status() string {
	return fmt.Sprintf("Fit %d/%d", s.outcome.Result.OverallFit, scoring.MaxScore)
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "x", Description: "Export"},
		{Key: "r", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

// Outcome returns the outcome being displayed.
func (s *ResultsScreen) Outcome() scoring.Outcome {
	return s.outcome
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportedMsg:
		if msg.Err != nil {
			s.notice = "Export failed: " + msg.Err.Error()
		} else {
			s.notice = "Report saved to " + msg.Path
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "x":
			return s, s.export()
		case "up", "k":
			s.scroll(-1)
		case "down", "j":
			s.scroll(1)
		case "pgup", "b":
			s.scroll(-s.page())
		case "pgdown", "space", " ":
			s.scroll(s.page())
		case "home", "g":
			s.offset = 0
		case "end", "G":
			s.offset = 1 << 30
		}
	}
	return s, nil
}

func (s *ResultsScreen) page() int {
	return max(s.lastHeight-2, 1)
}

func (s *ResultsScreen) scroll(delta int) {
	s.offset = max(s.offset+delta, 0)
}

func (s *ResultsScreen) export() tea.Cmd {
	outcome := s.outcome
	stamp := s.completedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	path := filepath.Join(s.exportDir, "iotfit-report-"+stamp.Format("20060102-150405")+".txt")

	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{Err: err}
		}
		if err := report.WriteText(f, outcome); err != nil {
			f.Close()
			return exportedMsg{Err: err}
		}
		if err := f.Close(); err != nil {
			return exportedMsg{Err: err}
		}
		return exportedMsg{Path: path}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	s.lastHeight = height

	lines := strings.Split(s.render(width), "\n")
	maxOffset := max(len(lines)-height, 0)
	s.offset = min(s.offset, maxOffset)

	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}

func (s *ResultsScreen) render(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Warning).Render(s.notice)))
		b.WriteString("\n\n")
	}

	b.WriteString(renderDashboard(s.outcome, s.subtitle(), width))
	return b.String()
}

func (s *ResultsScreen) subtitle() string {
	var parts []string
	if s.label != "" {
		parts = append(parts, s.label)
	}
	if !s.completedAt.IsZero() {
		parts = append(parts, s.completedAt.Format("Jan 02, 2006 15:04"))
	}
	return strings.Join(parts, "  ·  ")
}
