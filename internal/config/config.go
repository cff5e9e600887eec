package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "IOTFIT_"

// Config holds runtime settings. Empty DBPath means the XDG default.
type Config struct {
	DBPath       string `env:"DB"`
	BankPath     string `env:"BANK"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"console"`
	LogFile      string `env:"LOG_FILE"`
	HistoryLimit int    `env:"HISTORY_LIMIT" envDefault:"20"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:     "info",
		LogFormat:    "console",
		HistoryLimit: 20,
	}
}

// Load reads an optional .env file from the working directory and then
// parses IOTFIT_* variables. Variables already set in the environment win
// over the file.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are skipped.
func LoadFiles(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	var problems []error
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		problems = append(problems, fmt.Errorf("%sLOG_LEVEL: unknown level %q", EnvPrefix, c.LogLevel))
	}
	if !slices.Contains([]string{"console", "json"}, c.LogFormat) {
		problems = append(problems, fmt.Errorf("%sLOG_FORMAT: unknown format %q", EnvPrefix, c.LogFormat))
	}
	if c.HistoryLimit < 0 {
		problems = append(problems, fmt.Errorf("%sHISTORY_LIMIT: must be >= 0, got %d", EnvPrefix, c.HistoryLimit))
	}
	return errors.Join(problems...)
}
