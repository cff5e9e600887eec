// Package report renders scored assessments for terminals and files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/scoring"
)

// BarWidth is the number of cells in a text score bar.
const BarWidth = 20

// Bar renders value/total as a fixed-width bar of filled and empty cells.
func Bar(value, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := min(max(value*width/total, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// errWriter remembers the first write error so rendering can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) section(title string) {
	ew.printf("\n%s\n%s\n", title, strings.Repeat("─", len(title)))
}

func (ew *errWriter) list(items []string, bullet func(i int) string) {
	if len(items) == 0 {
		ew.printf("  (none)\n")
		return
	}
	for i, it := range items {
		ew.printf("  %s %s\n", bullet(i), it)
	}
}

// WriteText renders the full results dashboard as plain text.
func WriteText(w io.Writer, o scoring.Outcome) error {
	ew := &errWriter{w: w}
	r := o.Result

	ew.section("Overall Recommendation")
	ew.printf("  %s\n", r.Recommendation.Label())
	ew.printf("  Overall Fit Score  %3d/%d  %s\n", r.OverallFit, scoring.MaxScore, Bar(r.OverallFit, scoring.MaxScore, BarWidth))

	ew.section("Category Scores")
	for _, s := range r.Scores {
		ew.printf("  %-24s %3d/%d  %s\n", assessment.CategoryDisplayName(s.Category), s.Value, s.MaxValue, Bar(s.Value, s.MaxValue, BarWidth))
		ew.printf("  %-24s %s\n", "", s.Interpretation)
	}

	ew.section("WISCAR Readiness Analysis")
	for _, d := range assessment.AllDimensions() {
		v := o.WISCAR.Get(d)
		ew.printf("  %-18s %3d  %s\n", assessment.DimensionDisplayName(d), v, Bar(v, scoring.MaxScore, BarWidth))
	}

	dot := func(int) string { return "•" }
	numbered := func(i int) string { return fmt.Sprintf("%d.", i+1) }

	ew.section("Key Insights")
	ew.list(r.Insights, dot)
	ew.section("Recommended Next Steps")
	ew.list(r.NextSteps, numbered)
	ew.section("Career Paths")
	ew.list(r.CareerPaths, dot)
	ew.section("Learning Resources")
	ew.list(r.LearningResources, dot)

	return ew.err
}

// WriteJSON writes the outcome as indented JSON.
func WriteJSON(w io.Writer, o scoring.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	return nil
}

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", s)
	}
}

// Write renders o in the given format.
func Write(w io.Writer, f Format, o scoring.Outcome) error {
	if f == FormatJSON {
		return WriteJSON(w, o)
	}
	return WriteText(w, o)
}
