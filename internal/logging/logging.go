package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const ServiceName = "pawfuel"

type Options struct {
	Level       string
	Environment string
	// Paths defaults to stderr so command output on stdout stays clean.
	Paths []string
}

// New builds a console logger for development and a JSON logger for
// production, both tagged with the service and environment.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil || strings.TrimSpace(opts.Level) == "" {
		level = zapcore.InfoLevel
	}
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}

	var cfg zap.Config
	if strings.EqualFold(opts.Environment, "production") {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = paths
	cfg.ErrorOutputPaths = paths

	logger, err := cfg.Build(zap.Fields(
		zap.String("service", ServiceName),
		zap.String("environment", opts.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
