package intro

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iotfit/internal/router"
	"github.com/abhisek/iotfit/internal/screen"
	"github.com/abhisek/iotfit/internal/screens/history"
	"github.com/abhisek/iotfit/internal/screens/quiz"
	"github.com/abhisek/iotfit/internal/ui/components"
	"github.com/abhisek/iotfit/internal/ui/layout"
	"github.com/abhisek/iotfit/internal/ui/theme"
)

const labelLimit = 40

const (
	headline = "IoT Security Engineer Assessment"
	tagline  = "Comprehensive Readiness & Career Fit Assessment for IoT Security Engineering"

	discover = "This comprehensive assessment evaluates your psychological fit, technical aptitude, " +
		"and readiness for a career in IoT Security Engineering. Get personalized insights " +
		"and recommendations based on validated psychometric and technical evaluations."

	whyIoT = "IoT Security Engineers protect billions of connected devices worldwide. This rapidly " +
		"growing field combines cybersecurity expertise with IoT technologies, offering exciting " +
		"career opportunities in healthcare, automotive, smart cities, and more."
)

var features = []string{
	"Psychological Compatibility",
	"Technical Aptitude",
	"WISCAR Readiness Analysis",
	"Personalized Career Guidance",
}

// IntroScreen is the root screen: the assessment overview, a name field
// and the main menu.
type IntroScreen struct {
	deps         quiz.Deps
	historyLimit int
	input        components.TextInput
	menu         components.Menu
}

var _ screen.Screen = (*IntroScreen)(nil)
var _ screen.KeyHintProvider = (*IntroScreen)(nil)

// New creates the intro screen. historyLimit caps the history list.
func New(deps quiz.Deps, historyLimit int) *IntroScreen {
	s := &IntroScreen{
		deps:         deps,
		historyLimit: historyLimit,
		input:        components.NewTextInput("Your name (optional)", labelLimit),
	}

	items := []components.MenuItem{
		{Label: "Start Assessment", Action: func() tea.Cmd {
			next := quiz.New(s.deps, s.input.Value())
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: "Past Results", Disabled: deps.Results == nil, Action: func() tea.Cmd {
			next := history.New(s.deps.Results, s.historyLimit)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *IntroScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *IntroScreen) Title() string {
	return "Welcome"
}

func (s *IntroScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Type", Description: "Your name"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "down", "enter":
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *IntroScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(headline))
	b.WriteString("\n")
	b.WriteString(components.Center(theme.Subtitle.Width(cw).Render(tagline), width))
	b.WriteString("\n\n")

	if !layout.IsCompactHeight(height) {
		var feats []string
		for _, f := range features {
			feats = append(feats, lipgloss.NewStyle().Foreground(theme.Secondary).Render("◆ ")+f)
		}
		body := text.Render(discover) + "\n\n" + strings.Join(feats, "\n")
		b.WriteString(components.Center(components.Panel("What You'll Discover", body, cw), width))
		b.WriteString("\n")
	}

	b.WriteString(components.Center(components.Panel("Assessment Overview", s.overview(dim), cw), width))
	b.WriteString("\n")

	if !layout.IsCompactHeight(height) {
		b.WriteString(components.Center(components.Panel("Why IoT Security Engineering?", text.Render(whyIoT), cw), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.Center(s.input.View(), width))
	b.WriteString("\n\n")
	b.WriteString(components.Center(s.menu.View(), width))

	return b.String()
}

func (s *IntroScreen) overview(dim lipgloss.Style) string {
	bank := s.deps.Bank
	var lines []string
	lines = append(lines, fmt.Sprintf("%s about %d minutes, %d questions",
		dim.Render("Duration:"), bank.TotalMinutes(), bank.Len()))
	for _, sec := range bank.Sections() {
		if len(sec.Questions) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s",
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%2d min", sec.TimeMinutes)),
			sec.Title))
	}
	lines = append(lines,
		dim.Render("Output:")+" Detailed career fit analysis and learning roadmap",
		dim.Render("Privacy:")+" Results stay on this machine")
	return strings.Join(lines, "\n")
}
