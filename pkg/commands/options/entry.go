package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/liftlog/pkg/entry"
)

// EntryOptions carries the entry field flags shared by add and edit.
type EntryOptions struct {
	Name   string
	Weight string
	Reps   string
	Sets   string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "", "Exercise name.")
	cmd.Flags().StringVarP(&o.Weight, "weight", "w", "", "Weight, as typed.")
	cmd.Flags().StringVarP(&o.Reps, "reps", "r", "", "Repetitions per set.")
	cmd.Flags().StringVarP(&o.Sets, "sets", "s", "", "Number of sets.")
}

// Fields returns the trimmed flag values.
func (o *EntryOptions) Fields() entry.Fields {
	return entry.Fields{
		Name:   strings.TrimSpace(o.Name),
		Weight: entry.Value(strings.TrimSpace(o.Weight)),
		Reps:   entry.Value(strings.TrimSpace(o.Reps)),
		Sets:   entry.Value(strings.TrimSpace(o.Sets)),
	}
}

// Changed returns a pointer per flag that was set on cmd, nil otherwise.
func (o *EntryOptions) Changed(cmd *cobra.Command) (name, weight, reps, sets *string) {
	f := o.Fields()
	pick := func(flag, v string) *string {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		return &v
	}
	return pick("name", f.Name), pick("weight", f.Weight.String()), pick("reps", f.Reps.String()), pick("sets", f.Sets.String())
}

// DaysOptions
type DaysOptions struct {
	Month string
}

func AddDaysArgs(cmd *cobra.Command, o *DaysOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Show a calendar for a month instead of a list, example: --month="2024-02".`)
}
