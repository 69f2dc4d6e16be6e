package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/liftlog/pkg/config"
	"tableflip.dev/liftlog/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(liftlog completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(liftlog completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// dayCompletions offers logged days from the local store, newest first.
func dayCompletions(toComplete string) []string {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil
	}
	days, err := p.Days(context.Background())
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		if strings.HasPrefix(days[i], toComplete) {
			out = append(out, days[i])
		}
	}
	return out
}
