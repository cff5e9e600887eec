package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/iotfit/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a 0-100 value.
type ProgressBar struct {
	Label      string
	LabelWidth int // pads Label so stacked bars line up
	Value      int
	ShowValue  bool
	Width      int
	Fill       color.Color
}

// NewProgressBar creates a progress bar filled with the secondary color.
func NewProgressBar(label string, value int, showValue bool, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Value:     value,
		ShowValue: showValue,
		Width:     width,
		Fill:      theme.Secondary,
	}
}

// Filled returns how many of barWidth cells are filled.
func Filled(value, barWidth int) int {
	value = min(max(value, 0), 100)
	return value * barWidth / 100
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	valueWidth := 0
	if p.ShowValue {
		valueWidth = 6 // "  100%"
	}

	barWidth := max(p.Width-lipgloss.Width(result)-valueWidth, 4)
	filled := Filled(p.Value, barWidth)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowValue {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", min(max(p.Value, 0), 100)))
	}

	return result
}
