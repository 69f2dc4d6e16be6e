package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger for env. "dev" and "development" get a console
// encoder with ISO8601 timestamps, anything else the production JSON config.
func New(env string) (*zap.Logger, error) {
	return config(env).Build()
}

// ToFile is New with every output redirected to path, for terminal UIs that
// own the screen. An empty path yields a no-op logger.
func ToFile(env, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := config(env)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func IsDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development":
		return true
	}
	return false
}

func config(env string) zap.Config {
	cfg := zap.NewProductionConfig()
	if IsDevelopment(env) {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return cfg
}
