package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/liftlog/pkg/client"
	"tableflip.dev/liftlog/pkg/commands/options"
	"tableflip.dev/liftlog/pkg/config"
	"tableflip.dev/liftlog/pkg/runner/day"
	"tableflip.dev/liftlog/pkg/snake"
)

// dayFlags are the flags every day command shares.
type dayFlags struct {
	on     options.OnOptions
	server options.ServerOptions
	output options.OutputOptions
	id     options.IDOptions
}

func (f *dayFlags) add(cmd *cobra.Command) {
	options.AddOnArgs(cmd, &f.on)
	options.AddServerArgs(cmd, &f.server)
	options.AddOutputArg(cmd, &f.output)
	options.AddShowIDArgs(cmd, &f.id)
	_ = cmd.RegisterFlagCompletionFunc("on", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return dayCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

func (f *dayFlags) runner(cmd *cobra.Command) (*day.Day, error) {
	when, err := f.on.GetOn()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := clientLogger()
	if err != nil {
		return nil, err
	}
	return &day.Day{
		API:    client.New(f.server.Resolve(cfg)),
		On:     when,
		JSON:   f.output.JSON,
		ShowID: f.id.ShowID,
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Log:    log,
	}, nil
}

func addList(topLevel *cobra.Command) {
	f := &dayFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "show the entries of a day",
		Example: `
liftlog list
liftlog list --on 2024-02-29 --show-id
liftlog list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := f.runner(cmd)
			if err != nil {
				return f.output.HandleError(err)
			}
			return f.output.HandleError(d.List(cmd.Context()))
		},
	}
	f.add(cmd)

	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command) {
	f := &dayFlags{}
	eo := &options.EntryOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "log an entry at the end of a day",
		Example: `
liftlog add --name Squat --weight 100 --reps 5 --sets 5
liftlog add -w 60 -r 8 -s 3 --on 2024-02-29
liftlog add -i --name Deadlift
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !i.Interactive {
				return nil
			}
			return snake.Fill(cmd, nil,
				snake.Field{Name: "name"},
				snake.Field{Name: "weight", Required: true},
				snake.Field{Name: "reps", Required: true},
				snake.Field{Name: "sets", Required: true},
			)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := f.runner(cmd)
			if err != nil {
				return f.output.HandleError(err)
			}
			return f.output.HandleError(d.Add(cmd.Context(), eo.Fields()))
		},
	}
	f.add(cmd)
	options.AddEntryArgs(cmd, eo)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	f := &dayFlags{}
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "change an entry; unset fields keep their value",
		Example: `
liftlog edit 3f1c --weight 105
liftlog edit 3f1c --name "Front squat" --on 2024-02-29
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := f.runner(cmd)
			if err != nil {
				return f.output.HandleError(err)
			}
			var p day.Patch
			p.Name, p.Weight, p.Reps, p.Sets = eo.Changed(cmd)
			return f.output.HandleError(d.Edit(cmd.Context(), args[0], p))
		},
	}
	f.add(cmd)
	options.AddEntryArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	f := &dayFlags{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "delete an entry after confirmation",
		Example: `
liftlog rm 3f1c
liftlog rm 3f1c --yes --on 2024-02-29
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := f.runner(cmd)
			if err != nil {
				return f.output.HandleError(err)
			}
			d.Yes = co.Yes
			return f.output.HandleError(d.Remove(cmd.Context(), args[0]))
		},
	}
	f.add(cmd)
	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
