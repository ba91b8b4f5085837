package main

import (
	"jmatch/internal/config"
	"jmatch/internal/logging"
)

// buildLogger resolves the effective log format/level from CLI flags
// falling back to config, and constructs the logger every subcommand uses.
func buildLogger(cfg *config.Config) *logging.Logger {
	format := logging.Format(cfg.Logging.Format)
	if logFormatFlag != "" {
		format = logging.Format(logFormatFlag)
	}
	level := logging.LogLevel(cfg.Logging.Level)
	if logLevelFlag != "" {
		level = logging.LogLevel(logLevelFlag)
	}
	return logging.NewLogger(logging.Config{Format: format, Level: level})
}

// loadConfig loads configuration from --config, falling back to defaults
// on a missing file per config.Load's contract.
func loadConfig() (*config.Config, error) {
	return config.Load(configPathFlag)
}
