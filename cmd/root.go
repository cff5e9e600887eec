package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/config"
	"github.com/abhisek/iotfit/internal/logging"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/store"
)

// cfg is populated by the root PersistentPreRunE before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "iotfit",
	Short: "IoT Security Engineering career-fit assessment",
	Long: "iotfit: a terminal assessment of your psychological fit, technical aptitude " +
		"and WISCAR readiness for a career in IoT Security Engineering.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides IOTFIT_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a JSON question bank (overrides IOTFIT_BANK env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides IOTFIT_LOG_LEVEL)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env and IOTFIT_* variables, then applies flag overrides.
func loadConfig(cmd *cobra.Command) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		c.BankPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		c.LogLevel = l
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

func loggingConfig() logging.Config {
	return logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile}
}

// newLogger builds the logger for line-oriented commands, which may log to
// stderr.
func newLogger() (*zap.Logger, error) {
	return logging.New(loggingConfig())
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then IOTFIT_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadBank returns the bank from --bank / IOTFIT_BANK, or the built-in one.
func loadBank() (*assessment.Bank, error) {
	if cfg.BankPath == "" {
		return assessment.Default(), nil
	}
	f, err := os.Open(cfg.BankPath)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	bank, err := assessment.LoadBank(f)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", cfg.BankPath, err)
	}
	return bank, nil
}

func newScorer(logger *zap.Logger) (*scoring.Scorer, error) {
	bank, err := loadBank()
	if err != nil {
		return nil, err
	}
	return scoring.New(bank, logger), nil
}
