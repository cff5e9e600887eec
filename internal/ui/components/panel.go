package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iotfit/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all panels so
// stacked boxes visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 76)
}

// Panel wraps content in a rounded card with an optional heading.
func Panel(title, content string, cw int) string {
	if title != "" {
		content = theme.Heading.Render(title) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// Center places content in the middle of width columns.
func Center(content string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
