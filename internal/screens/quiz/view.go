package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/ui/components"
	"github.com/abhisek/iotfit/internal/ui/theme"
)

func progressLabel(index, total int) string {
	return fmt.Sprintf("%d of %d", index+1, total)
}

func (s *QuizScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, s.sess.Answered())
	}
	if s.finishing {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Scoring your answers...")
	}

	q, ok := s.sess.Current()
	if !ok {
		return ""
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	// Progress line.
	bar := components.NewProgressBar(progressLabel(s.sess.Index(), s.sess.Total()), s.sess.Progress(), true, cw)
	bar.Fill = theme.Primary
	b.WriteString(components.Center(bar.View(), width))
	b.WriteString("\n\n")

	// Section and category.
	if sec, ok := s.sess.Section(); ok {
		b.WriteString(components.Center(theme.Heading.Render(sec.Title), width))
		b.WriteString("\n")
		b.WriteString(components.Center(
			lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center).Render(sec.Description),
			width))
		b.WriteString("\n\n")
	}

	card := lipgloss.NewStyle().Foreground(theme.Accent).Render(questionTag(q)) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw-6).Render(q.Text) + "\n\n" +
		s.options.View()
	b.WriteString(components.Center(theme.Card.Width(cw).Render(card), width))
	b.WriteString("\n\n")

	// Status and navigation.
	status := lipgloss.NewStyle().Foreground(theme.Warning).Render("Please select an answer")
	if s.sess.CanProceed() {
		status = lipgloss.NewStyle().Foreground(theme.Success).Render("Ready to continue")
	}
	if s.errMsg != "" {
		status = lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}
	b.WriteString(components.Center(status, width))
	b.WriteString("\n\n")

	next := "Next →"
	if s.sess.IsLast() {
		next = "Complete ✓"
	}
	prev := components.NewButton("← Previous", s.sess.Index() > 0)
	nextBtn := components.NewButton(next, s.sess.CanProceed())
	b.WriteString(components.Center(
		lipgloss.JoinHorizontal(lipgloss.Center, prev.View(), "    ", nextBtn.View()),
		width))

	return b.String()
}

func questionTag(q assessment.Question) string {
	tag := assessment.CategoryDisplayName(q.Category)
	if q.Dimension != assessment.DimensionNone {
		tag += " · " + assessment.DimensionDisplayName(q.Dimension)
	}
	return strings.ToUpper(tag)
}

func renderQuitConfirm(width, answered int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave the assessment?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Your %d answers will be discarded.", answered)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, discard"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}
