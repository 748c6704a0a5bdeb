// Package logging builds the zap logger for the notation command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zephyrtronium/notation/internal/config"
)

// New builds a logger from the logging configuration. verbose forces the
// debug level. Logs go to stderr so that they never mix with results.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc, err := zapConfig(cfg, verbose)
	if err != nil {
		return nil, err
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("notation"), nil
}

func zapConfig(cfg config.LoggingConfig, verbose bool) (zap.Config, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zc, fmt.Errorf("failed to parse log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	switch cfg.Format {
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	case "json":
		zc.Encoding = "json"
	default:
		return zc, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	// Sampling drops repeated entries, which hides REPL history.
	zc.Sampling = nil
	// Error entries are expected failures like division by zero, not bugs.
	zc.DisableStacktrace = true
	return zc, nil
}
