package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/ui/components"
	"github.com/abhisek/iotfit/internal/ui/theme"
)

// renderDashboard lays out every results section as stacked panels.
func renderDashboard(o scoring.Outcome, subtitle string, width int) string {
	cw := components.ContentWidth(width)
	inner := cw - 4
	res := o.Result

	var panels []string

	headline := theme.ScoreColor(res.OverallFit).Bold(true).Render(res.Recommendation.Label())
	if subtitle != "" {
		headline += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(subtitle)
	}
	panels = append(panels, components.Panel("Overall Recommendation", headline, cw))

	fit := theme.ScoreColor(res.OverallFit).Bold(true).
		Render(fmt.Sprintf("%d / %d", res.OverallFit, scoring.MaxScore))
	bar := components.NewProgressBar("", res.OverallFit, true, inner)
	bar.Fill = theme.Primary
	panels = append(panels, components.Panel("Overall Fit Score", fit+"\n"+bar.View(), cw))

	panels = append(panels, components.Panel("WISCAR Readiness Analysis", wiscarBars(o.WISCAR, inner), cw))
	panels = append(panels, components.Panel("Category Scores", categoryScores(res.Scores, inner), cw))

	lists := []struct {
		title    string
		items    []string
		numbered bool
	}{
		{"Key Insights", res.Insights, false},
		{"Recommended Next Steps", res.NextSteps, true},
		{"Career Paths", res.CareerPaths, false},
		{"Learning Resources", res.LearningResources, false},
	}
	for _, l := range lists {
		if len(l.items) == 0 {
			continue
		}
		panels = append(panels, components.Panel(l.title, bulletList(l.items, l.numbered, inner), cw))
	}

	var b strings.Builder
	for _, p := range panels {
		b.WriteString(components.Center(p, width))
		b.WriteString("\n")
	}
	return b.String()
}

func wiscarBars(w scoring.WISCARDimension, width int) string {
	labelWidth := 0
	for _, d := range assessment.AllDimensions() {
		labelWidth = max(labelWidth, lipgloss.Width(assessment.DimensionDisplayName(d)))
	}

	var rows []string
	for _, d := range assessment.AllDimensions() {
		v := w.Get(d)
		bar := components.NewProgressBar(assessment.DimensionDisplayName(d), v, true, width)
		bar.LabelWidth = labelWidth
		bar.Fill = theme.ScoreFill(v)
		rows = append(rows, bar.View())
	}
	return strings.Join(rows, "\n")
}

func categoryScores(scores []scoring.Score, width int) string {
	var rows []string
	for _, sc := range scores {
		name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(assessment.CategoryDisplayName(sc.Category))
		value := theme.ScoreColor(sc.Value).Render(fmt.Sprintf("%d/%d", sc.Value, sc.MaxValue))
		gap := max(width-lipgloss.Width(name)-lipgloss.Width(value), 1)

		bar := components.NewProgressBar("", sc.Value, false, width)
		note := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(width).
			Render(sc.Interpretation)

		rows = append(rows, name+strings.Repeat(" ", gap)+value+"\n"+bar.View()+"\n"+note)
	}
	return strings.Join(rows, "\n\n")
}

func bulletList(items []string, numbered bool, width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	var rows []string
	for i, item := range items {
		bullet := "• "
		if numbered {
			bullet = fmt.Sprintf("%d. ", i+1)
		}
		rows = append(rows, style.Render(bullet+item))
	}
	return strings.Join(rows, "\n")
}
