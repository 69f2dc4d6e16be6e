package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/liftlog/pkg/config"
	"tableflip.dev/liftlog/pkg/logger"
	"tableflip.dev/liftlog/pkg/runner/mcp"
	"tableflip.dev/liftlog/pkg/store"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		httpHost  string
		httpPort  int
		httpPath  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the day log over the Model Context
Protocol: list, create, update and delete entries, list logged days, and read
liftlog://days/{date} resources. It reads and writes the local store directly.`,
		Example: `
liftlog mcp
liftlog mcp --transport http --http-port 8080
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			persistence, err := store.Load(cfg)
			if err != nil {
				return err
			}
			// stdout carries the stdio protocol; logs go to stderr.
			log, err := logger.New(env())
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			path := strings.TrimSpace(httpPath)
			if path == "" {
				path = "/mcp"
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			runner := mcp.Runner{
				Persistence:      persistence,
				Logger:           log,
				Name:             "liftlog",
				Version:          "dev",
				Transport:        t,
				HTTPEndpointPath: path,
			}

			if t == mcp.TransportHTTP {
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}
				runner.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(httpPort))
				runner.OnHTTPListening = func(a net.Addr) {
					log.Info("MCP HTTP server listening", zap.String("url", "http://"+a.String()+path))
				}
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportStdio), "transport to use: stdio or http")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")

	topLevel.AddCommand(cmd)
}
