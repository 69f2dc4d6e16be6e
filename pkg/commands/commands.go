package commands

import (
	"errors"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/liftlog/pkg/commands/options"
	"tableflip.dev/liftlog/pkg/logger"
	"tableflip.dev/liftlog/pkg/runner/day"
)

var (
	logFile string
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "liftlog",
		Short: base.Wrap80("A per-day workout log: a local server, an interactive day view and a scriptable command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Write client logs to this file. Logs are discarded when unset.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addServe(topLevel)
	addUI(topLevel)
	addList(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addDays(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// Reported reports whether err was already shown to the user, so the caller
// only needs to set the exit status.
func Reported(err error) bool {
	return errors.Is(err, day.ErrReported) || errors.Is(err, options.ErrHandled)
}

func env() string {
	if e := os.Getenv("LIFTLOG_ENV"); e != "" {
		return e
	}
	return "development"
}

// clientLogger logs to --log-file; client commands own the terminal.
func clientLogger() (*zap.Logger, error) {
	return logger.ToFile(env(), logFile)
}
