package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/ui/theme"
)

// OptionList is a vertical single-choice selector over a question's choices.
// The cursor and the recorded choice are tracked separately so a learner
// can browse without changing their answer.
type OptionList struct {
	Options  []assessment.ScaleOption
	Cursor   int
	Chosen   int // index into Options, -1 when nothing is recorded
	Numbered bool
}

// NewOptionList creates a selector. chosen is the index of a previously
// recorded answer, or -1.
func NewOptionList(options []assessment.ScaleOption, chosen int) OptionList {
	if chosen < -1 || chosen >= len(options) {
		chosen = -1
	}
	cursor := 0
	if chosen >= 0 {
		cursor = chosen
	}
	return OptionList{
		Options:  options,
		Cursor:   cursor,
		Chosen:   chosen,
		Numbered: true,
	}
}

// IndexOfValue returns the position of the option carrying value, or -1.
func IndexOfValue(options []assessment.ScaleOption, value int) int {
	for i, o := range options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Update handles cursor movement and selection. The returned bool reports
// whether a choice was recorded by this message.
func (o OptionList) Update(msg tea.Msg) (OptionList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(o.Options) == 0 {
		return o, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
		return o, false
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
		return o, false
	case "space", " ", "enter":
		o.Chosen = o.Cursor
		return o, true
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(o.Options) {
		o.Cursor = n - 1
		o.Chosen = o.Cursor
		return o, true
	}
	return o, false
}

// Selected returns the recorded option.
func (o OptionList) Selected() (assessment.ScaleOption, bool) {
	if o.Chosen < 0 || o.Chosen >= len(o.Options) {
		return assessment.ScaleOption{}, false
	}
	return o.Options[o.Chosen], true
}

// View renders one line per option.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		mark := "○"
		if i == o.Chosen {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %s", prefix, mark, opt.Label)
		if o.Numbered {
			line = fmt.Sprintf("%s%s %d) %s", prefix, mark, i+1, opt.Label)
		}

		switch {
		case i == o.Chosen:
			s += theme.Chosen.Render(line) + "\n"
		case i == o.Cursor:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
