package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iotfit/internal/report"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a JSON response file",
	Long: "Score a JSON response file of the form " +
		`{"label": "...", "responses": [{"question_id": "psych_1", "value": 4}, ...]}. ` +
		"Use -f - to read from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		formatName, _ := cmd.Flags().GetString("format")
		save, _ := cmd.Flags().GetBool("save")
		label, _ := cmd.Flags().GetString("label")

		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		scorer, err := newScorer(logger)
		if err != nil {
			return err
		}

		rf, err := readResponses(cmd, path)
		if err != nil {
			return err
		}
		if label == "" {
			label = rf.Label
		}

		outcome := scorer.Score(rf.Responses)
		logger.Debug("scored response file",
			zap.String("file", path),
			zap.Int("responses", len(rf.Responses)),
			zap.Int("overall_fit", outcome.Result.OverallFit))

		if save {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			rec := &store.Record{
				Label:     label,
				StartedAt: earliest(rf.Responses),
				Responses: rf.Responses,
				Outcome:   outcome,
			}
			if err := st.ResultRepo().Save(cmd.Context(), rec); err != nil {
				return fmt.Errorf("save result: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved as %s\n", rec.ID)
		}

		return report.Write(cmd.OutOrStdout(), format, outcome)
	},
}

func init() {
	scoreCmd.Flags().StringP("file", "f", "", "Response file (JSON), or - for stdin")
	scoreCmd.Flags().String("format", "text", "Report format: text or json")
	scoreCmd.Flags().Bool("save", false, "Store the result in history")
	scoreCmd.Flags().String("label", "", "Name stored with the result (defaults to the file's label)")
	_ = scoreCmd.MarkFlagRequired("file")
}

func readResponses(cmd *cobra.Command, path string) (scoring.ResponseFile, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return scoring.ResponseFile{}, fmt.Errorf("open responses: %w", err)
		}
		defer f.Close()
		r = f
	}
	rf, err := scoring.LoadResponses(r)
	if err != nil {
		return scoring.ResponseFile{}, fmt.Errorf("load responses %s: %w", path, err)
	}
	return rf, nil
}

// earliest returns the first response timestamp, or zero when none is set.
func earliest(responses []scoring.Response) time.Time {
	var first time.Time
	for _, r := range responses {
		if r.Timestamp.IsZero() {
			continue
		}
		if first.IsZero() || r.Timestamp.Before(first) {
			first = r.Timestamp
		}
	}
	return first
}
