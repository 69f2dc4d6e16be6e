package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/liftlog/pkg/client"
	"tableflip.dev/liftlog/pkg/commands/options"
	"tableflip.dev/liftlog/pkg/config"
	"tableflip.dev/liftlog/pkg/daylog"
	teaui "tableflip.dev/liftlog/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	so := &options.ServerOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive day view",
		Example: `
liftlog ui
liftlog ui --on 2024-02-29 --server http://127.0.0.1:5000
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return errors.New("ui needs a terminal; use list, add, edit or rm instead")
			}
			when, err := on.GetOn()
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := clientLogger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			api := client.New(so.Resolve(cfg))
			return teaui.Run(cmd.Context(), api, daylog.WithDay(when), daylog.WithLogger(log))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddServerArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
