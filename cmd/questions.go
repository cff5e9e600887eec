package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/iotfit/internal/assessment"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the question bank (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		showKey, _ := cmd.Flags().GetBool("answers")

		bank, err := loadBank()
		if err != nil {
			return err
		}

		var qs []assessment.Question
		if category != "" {
			qs = bank.ByCategory(assessment.Category(category))
			if len(qs) == 0 {
				return fmt.Errorf("no questions found for category %q", category)
			}
		} else {
			qs = bank.Questions()
		}

		out := cmd.OutOrStdout()

		// Header.
		fmt.Fprintf(out, "%-14s  %-16s  %-13s  %-12s  %s\n",
			"ID", "Type", "Category", "Dimension", "Text")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, q := range qs {
			text := q.Text
			if len(text) > 60 {
				text = text[:57] + "..."
			}
			dim := "-"
			if q.Dimension != assessment.DimensionNone {
				dim = assessment.DimensionDisplayName(q.Dimension)
			}
			fmt.Fprintf(out, "%-14s  %-16s  %-13s  %-12s  %s\n",
				q.ID, q.Type, q.Category, dim, text)

			if showKey && q.Type == assessment.TypeMultipleChoice {
				for i, o := range q.Options {
					mark := " "
					if i == q.CorrectIndex {
						mark = "✓"
					}
					fmt.Fprintf(out, "%14s  %s %d) %s\n", "", mark, i+1, o)
				}
			}
		}

		fmt.Fprintf(out, "\n%d questions\n", len(qs))
		return nil
	},
}

func init() {
	questionsCmd.Flags().String("category", "", "Filter by category (psychometric, technical, readiness)")
	questionsCmd.Flags().Bool("answers", false, "Show multiple-choice options with the answer key")
}
