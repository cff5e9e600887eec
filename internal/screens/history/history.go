package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/router"
	"github.com/abhisek/iotfit/internal/screen"
	"github.com/abhisek/iotfit/internal/screens/results"
	"github.com/abhisek/iotfit/internal/store"
	"github.com/abhisek/iotfit/internal/ui/layout"
	"github.com/abhisek/iotfit/internal/ui/theme"
)

// DefaultLimit is how many past results are listed when no limit is given.
const DefaultLimit = 20

type historyLoadedMsg struct {
	Records []store.Record
	Err     error
}

// HistoryScreen lists past assessment results.
type HistoryScreen struct {
	repo     store.ResultRepo
	limit    int
	records  []store.Record
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.StatusProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen showing at most limit results.
func New(repo store.ResultRepo, limit int) *HistoryScreen {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &HistoryScreen{
		repo:     repo,
		limit:    limit,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, limit := s.repo, s.limit
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		records, err := repo.List(context.Background(), store.QueryOpts{Limit: limit})
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Status() string {
	if !s.loaded {
		return ""
	}
	return fmt.Sprintf("%d results", len(s.records))
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "o", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.records) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
			return s, nil
		case "o":
			if s.selected < len(s.records) {
				rec := s.records[s.selected]
				next := results.New(rec.Outcome,
					results.WithLabel(rec.Label),
					results.WithCompletedAt(rec.CompletedAt))
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assessments yet. Take one from the main menu!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		res := rec.Outcome.Result

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		label := rec.Label
		if label == "" {
			label = "(unnamed)"
		}

		line := fmt.Sprintf("%s%s  %-8s  %-16s  fit %3d  %s",
			prefix,
			rec.CompletedAt.Format("Jan 02, 2006 15:04"),
			shortID(rec.ID),
			truncate(label, 16),
			res.OverallFit,
			res.Recommendation)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(rec)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderDetail(rec store.Record) string {
	res := rec.Outcome.Result
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var lines []string
	lines = append(lines, theme.ScoreColor(res.OverallFit).Render(res.Recommendation.Label()))
	for _, sc := range res.Scores {
		lines = append(lines, fmt.Sprintf("%-24s %s",
			assessment.CategoryDisplayName(sc.Category),
			theme.ScoreColor(sc.Value).Render(fmt.Sprintf("%3d", sc.Value))))
	}

	var dims []string
	for _, d := range assessment.AllDimensions() {
		dims = append(dims, fmt.Sprintf("%s %d", assessment.DimensionDisplayName(d), rec.Outcome.WISCAR.Get(d)))
	}
	lines = append(lines, dim.Render(strings.Join(dims, " · ")))
	lines = append(lines, dim.Render(fmt.Sprintf("%d answers · took %s", len(rec.Responses), duration(rec))))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Border).
		PaddingLeft(2).
		Render(strings.Join(lines, "\n"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func duration(rec store.Record) string {
	d := rec.CompletedAt.Sub(rec.StartedAt)
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
