package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/liftlog/pkg/config"
)

// ServerOptions points a client command at a liftlog server.
type ServerOptions struct {
	URL string
}

func AddServerArgs(cmd *cobra.Command, o *ServerOptions) {
	cmd.Flags().StringVar(&o.URL, "server", "",
		`Base URL of the liftlog server. Defaults to "server" in .liftlog.yaml.`)
}

// Resolve returns the flag value, falling back to the configured server.
func (o *ServerOptions) Resolve(cfg config.Config) string {
	if u := strings.TrimSpace(o.URL); u != "" {
		return strings.TrimRight(u, "/")
	}
	if cfg == nil {
		return config.DefaultServer
	}
	return cfg.ServerURL()
}
