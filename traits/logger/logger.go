package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates the application logger. Development builds get the
// human-readable console encoder, everything else gets production JSON.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("ENVIRONMENT") == "production" {
		cfg := zap.NewProductionConfig()
		cfg.Level = levelFromEnv(zapcore.InfoLevel)
		return cfg.Build()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = levelFromEnv(zapcore.DebugLevel)
	return cfg.Build()
}

func levelFromEnv(def zapcore.Level) zap.AtomicLevel {
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(raw)); err == nil {
			return zap.NewAtomicLevelAt(lvl)
		}
	}
	return zap.NewAtomicLevelAt(def)
}
