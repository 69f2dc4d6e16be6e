package server

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the HTTP server settings, read from LIFTLOG_* variables.
type Config struct {
	Env             string        `envconfig:"ENV" default:"development"`
	Listen          string        `envconfig:"LISTEN" default:"127.0.0.1:5000"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"1m"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("liftlog", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("server config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case "dev", "development", "production", "test":
	default:
		return fmt.Errorf("invalid environment: %s (must be one of: development, production, test)", c.Env)
	}
	if c.Listen == "" {
		return fmt.Errorf("LIFTLOG_LISTEN must not be empty")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("read and write timeouts must be positive")
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("LIFTLOG_SHUTDOWN_TIMEOUT must be non-negative")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Listen=%s, ReadTimeout=%s, WriteTimeout=%s, IdleTimeout=%s}",
		c.Env, c.Listen, c.ReadTimeout, c.WriteTimeout, c.IdleTimeout)
}
