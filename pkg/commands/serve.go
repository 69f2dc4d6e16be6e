package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/liftlog/pkg/app"
	"tableflip.dev/liftlog/pkg/config"
	"tableflip.dev/liftlog/pkg/logger"
	"tableflip.dev/liftlog/pkg/server"
	"tableflip.dev/liftlog/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the entry server",
		Long: `Serve the entry HTTP API over the local store. Settings come from
LIFTLOG_* environment variables (LIFTLOG_LISTEN, LIFTLOG_ENV, timeouts);
the store location comes from .liftlog.yaml.`,
		Example: `
liftlog serve
liftlog serve --listen 0.0.0.0:5000
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				scfg.Listen = listen
			}
			log, err := logger.New(scfg.Env)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			log.Info("starting server",
				zap.String("config", scfg.String()),
				zap.String("store", cfg.BasePath()))

			s := server.Server{
				Service: &app.Service{Persistence: p},
				Logger:  log,
			}
			return s.Run(cmd.Context(), scfg)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on, overrides LIFTLOG_LISTEN.")

	topLevel.AddCommand(cmd)
}
