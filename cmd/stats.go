package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/report"
	"github.com/abhisek/iotfit/internal/scoring"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics across stored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := st.ResultRepo().Stats(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if s.Count == 0 {
			fmt.Fprintln(out, "No results yet. Run `iotfit take` to start.")
			return nil
		}

		fmt.Fprintf(out, "Assessments:   %d\n", s.Count)
		fmt.Fprintf(out, "First:         %s\n", s.First.Format("Jan 02, 2006 15:04"))
		fmt.Fprintf(out, "Latest:        %s\n", s.Latest.Format("Jan 02, 2006 15:04"))
		fmt.Fprintf(out, "Best fit:      %d/%d\n", s.BestFit, scoring.MaxScore)
		fmt.Fprintf(out, "Mean fit:      %.1f  %s\n\n", s.MeanFit,
			report.Bar(int(s.MeanFit+0.5), scoring.MaxScore, report.BarWidth))

		fmt.Fprintln(out, "Mean by category:")
		for _, c := range assessment.AllCategories() {
			m := s.MeanByCategory[c]
			fmt.Fprintf(out, "  %-24s %5.1f  %s\n", assessment.CategoryDisplayName(c), m,
				report.Bar(int(m+0.5), scoring.MaxScore, report.BarWidth))
		}

		fmt.Fprintln(out, "\nRecommendations:")
		for _, r := range []scoring.Recommendation{scoring.RecommendYes, scoring.RecommendMaybe, scoring.RecommendNo} {
			fmt.Fprintf(out, "  %-36s %d\n", r.Label(), s.ByRecommendation[r])
		}
		return nil
	},
}
