package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/liftlog/pkg/client"
	"tableflip.dev/liftlog/pkg/commands/options"
	"tableflip.dev/liftlog/pkg/config"
	"tableflip.dev/liftlog/pkg/printers"
)

func addDays(topLevel *cobra.Command) {
	so := &options.ServerOptions{}
	oo := &options.OutputOptions{}
	do := &options.DaysOptions{}

	cmd := &cobra.Command{
		Use:   "days",
		Short: "list the days that have entries",
		Example: `
liftlog days
liftlog days --month 2024-02
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return oo.HandleError(runDays(cmd, so, oo, do))
		},
	}
	options.AddServerArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	options.AddDaysArgs(cmd, do)

	topLevel.AddCommand(cmd)
}

func runDays(cmd *cobra.Command, so *options.ServerOptions, oo *options.OutputOptions, do *options.DaysOptions) error {
	var month time.Time
	if do.Month != "" {
		var err error
		month, err = time.ParseInLocation("2006-01", do.Month, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --month %q (expected YYYY-MM)", do.Month)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	days, err := client.New(so.Resolve(cfg)).Days(cmd.Context())
	if err != nil {
		if msg := client.Message(err); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	if oo.JSON {
		b, err := json.MarshalIndent(map[string]any{"days": days}, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}
	pp := printers.PrettyPrint{Out: cmd.OutOrStdout()}
	if !month.IsZero() {
		pp.Month(month, days)
		return nil
	}
	pp.Days(days)
	return nil
}
