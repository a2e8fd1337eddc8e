package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Env   string
	Level string
}

// LoadLoggerConfig loads logging configuration from environment variables
func LoadLoggerConfig(getenv func(string) string) (*LoggerConfig, error) {
	config := &LoggerConfig{
		Env:   envOr(getenv, "ENV", "dev"),
		Level: envOr(getenv, "LOG_LEVEL", "info"),
	}

	if _, err := zapcore.ParseLevel(config.Level); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return config, nil
}
