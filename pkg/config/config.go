package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath   = "~/.liftlog"
	DefaultServer = "http://127.0.0.1:5000"
)

// Config is the user-level configuration shared by every subcommand.
type Config interface {
	// BasePath is the directory holding the entry store.
	BasePath() string
	// ServerURL is the base URL clients talk to.
	ServerURL() string
}

// Load reads .liftlog.yaml from $LIFTLOG_CONFIG_PATH or the working
// directory and overlays LIFTLOG_* environment variables. A missing config
// file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("server", DefaultServer)
	v.SetConfigName(".liftlog") // .yaml is implicit
	v.SetEnvPrefix("LIFTLOG")
	v.AutomaticEnv()

	if override := os.Getenv("LIFTLOG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	path, err := homedir.Expand(strings.TrimSpace(v.GetString("path")))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}
	server := strings.TrimRight(strings.TrimSpace(v.GetString("server")), "/")
	if server == "" {
		server = DefaultServer
	}
	return &fileConfig{Path: path, Server: server}, nil
}

// Static returns a Config with fixed values, for flags and tests.
func Static(path, server string) Config {
	return &fileConfig{Path: path, Server: server}
}

type fileConfig struct {
	Path   string `json:"path"`
	Server string `json:"server"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) ServerURL() string {
	return f.Server
}
