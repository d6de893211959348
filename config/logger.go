package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. JSON output unless APP_ENV=dev; level from
// LOG_LEVEL (defaults to info, debug when DEBUG=true).
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if GetEnv("APP_ENV", "prod") == "dev" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level := logrus.InfoLevel
	if GetEnv("DEBUG", "") == "true" {
		level = logrus.DebugLevel
	}
	if lv := os.Getenv("LOG_LEVEL"); lv != "" {
		if parsed, err := logrus.ParseLevel(lv); err == nil {
			level = parsed
		}
	}
	logger.SetLevel(level)
	return logger
}
