package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/liftlog/pkg/timeutil"
)

const (
	layoutISOLoose = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects the day a command works on.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2024-02-29" or --on="2/29". Defaults to today.`)
}

// GetOn returns local midnight of the selected day, today when unset.
func (o *OnOptions) GetOn() (time.Time, error) {
	return parseOn(o.OnString, time.Now())
}

func parseOn(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return timeutil.StartOfDay(now), nil
	}
	if t, err := timeutil.ParseDay(s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutISOLoose, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutISOShort, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --on %q (expected YYYY-MM-DD or M/D)", s)
	}
	// A bare month/day is in the current year.
	return time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}
