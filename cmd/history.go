package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/report"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse stored assessment results",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored results, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		rec, _ := cmd.Flags().GetString("recommendation")
		label, _ := cmd.Flags().GetString("label")
		if !cmd.Flags().Changed("limit") {
			limit = cfg.HistoryLimit
		}

		opts := store.QueryOpts{Limit: limit, Label: label}
		if rec != "" {
			switch r := scoring.Recommendation(rec); r {
			case scoring.RecommendYes, scoring.RecommendMaybe, scoring.RecommendNo:
				opts.Recommendation = r
			default:
				return fmt.Errorf("unknown recommendation %q (want yes, maybe or no)", rec)
			}
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.ResultRepo().List(cmd.Context(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No results yet. Run `iotfit take` to start.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-17s  %-20s  %4s  %5s  %5s  %5s  %s\n",
			"ID", "Completed", "Label", "Fit", "Psych", "Tech", "Ready", "Recommendation")
		fmt.Fprintln(out, strings.Repeat("─", 96))

		for _, r := range records {
			res := r.Outcome.Result
			label := r.Label
			if len(label) > 20 {
				label = label[:17] + "..."
			}
			fmt.Fprintf(out, "%-8s  %-17s  %-20s  %4d  %5d  %5d  %5d  %s\n",
				shortID(r.ID),
				r.CompletedAt.Format("2006-01-02 15:04"),
				label,
				res.OverallFit,
				categoryValue(res, assessment.CategoryPsychometric),
				categoryValue(res, assessment.CategoryTechnical),
				categoryValue(res, assessment.CategoryReadiness),
				res.Recommendation)
		}

		fmt.Fprintf(out, "\n%d results\n", len(records))
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full report of a stored result (id or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.ResultRepo().Get(cmd.Context(), args[0])
		if errors.Is(err, store.ErrAmbiguousID) {
			return fmt.Errorf("%w; use more characters of the id", err)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if format == report.FormatText {
			fmt.Fprintf(out, "Result %s", rec.ID)
			if rec.Label != "" {
				fmt.Fprintf(out, " (%s)", rec.Label)
			}
			fmt.Fprintf(out, ", completed %s\n\n", rec.CompletedAt.Format("Jan 02, 2006 15:04"))
		}
		return report.Write(out, format, rec.Outcome)
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Maximum number of results (0 = all)")
	historyListCmd.Flags().String("recommendation", "", "Filter by recommendation (yes, maybe, no)")
	historyListCmd.Flags().String("label", "", "Filter by exact label")
	historyViewCmd.Flags().String("format", "text", "Report format: text or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func categoryValue(res scoring.AssessmentResult, c assessment.Category) int {
	s, _ := res.ScoreFor(c)
	return s.Value
}
