package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iotfit/internal/app"
	"github.com/abhisek/iotfit/internal/logging"
	"github.com/abhisek/iotfit/internal/screens/quiz"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logger, err := logging.ForTUI(loggingConfig())
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	scorer, err := newScorer(logger)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Debug("starting interactive assessment",
		zap.Int("questions", scorer.Bank().Len()),
		zap.String("bank", cfg.BankPath))

	return app.Run(app.Options{
		Deps: quiz.Deps{
			Bank:    scorer.Bank(),
			Scorer:  scorer,
			Results: st.ResultRepo(),
			Logger:  logger,
		},
		HistoryLimit: cfg.HistoryLimit,
	})
}
