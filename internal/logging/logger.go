package logging

import (
	"fmt"

	"github.com/GriffinCanCode/wpapi/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerName names every logger built here
const LoggerName = "wpapi"

// Config selects the level, encoding and sinks of the CLI logger.
type Config struct {
	// Level accepts zap names (debug, info, warn, error) and the
	// severity names used for API call records (notice, warning, critical...).
	Level       string
	Development bool
	// OutputPaths are zap sinks; stderr when empty so stdout carries only
	// API results.
	OutputPaths []string
}

// DevelopmentConfig switches cfg to colored console output with stack
// traces from warnings up. An unset level becomes debug.
func DevelopmentConfig(cfg Config) Config {
	cfg.Development = true
	if cfg.Level == "" {
		cfg.Level = "debug"
	}
	return cfg
}

// New builds a named logger for cfg.
func New(cfg Config) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig = productionEncoder()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Sampling = nil
	zapCfg.OutputPaths = []string{"stderr"}
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(LoggerName), nil
}

// parseLevel accepts zap level names first, then API severity names.
func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	if l, err := zapcore.ParseLevel(level); err == nil {
		return l, nil
	}
	severity, err := client.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, err
	}
	return severity.ZapLevel(), nil
}

// productionEncoder emits one JSON object per line with RFC 3339 times.
func productionEncoder() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	return enc
}
