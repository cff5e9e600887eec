package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iotfit/internal/console"
	"github.com/abhisek/iotfit/internal/report"
	"github.com/abhisek/iotfit/internal/session"
	"github.com/abhisek/iotfit/internal/store"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take the assessment",
	Long: "Take the assessment. By default this opens the interactive UI; " +
		"--plain asks the questions one per line on stdin and prints the report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		if !plain {
			return runApp(cmd)
		}
		return runPlain(cmd)
	},
}

func init() {
	takeCmd.Flags().Bool("plain", false, "Line-oriented quiz on stdin/stdout instead of the full-screen UI")
	takeCmd.Flags().String("label", "", "Name stored with the result")
	takeCmd.Flags().String("format", "text", "Report format: text or json")
	takeCmd.Flags().Bool("no-save", false, "Do not store the result in history")
}

func runPlain(cmd *cobra.Command) error {
	label, _ := cmd.Flags().GetString("label")
	formatName, _ := cmd.Flags().GetString("format")
	noSave, _ := cmd.Flags().GetBool("no-save")

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

	sess := session.New(scorer.Bank(), session.WithLabel(label))
	sess.Start()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "IoT Security Engineer Assessment: %d questions, about %d minutes.\n",
		scorer.Bank().Len(), scorer.Bank().TotalMinutes())

	if err := console.Run(cmd.Context(), cmd.InOrStdin(), out, sess); err != nil {
		if errors.Is(err, console.ErrAborted) {
			logger.Info("assessment abandoned", zap.Int("answered", sess.Answered()))
		}
		return err
	}

	c, err := sess.Complete(scorer)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)

	if !noSave {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		rec := store.RecordFrom(c)
		if err := st.ResultRepo().Save(cmd.Context(), rec); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		logger.Info("result saved", zap.String("id", rec.ID), zap.Int64("sequence", rec.Sequence))
	}

	return report.Write(out, format, c.Outcome)
}
