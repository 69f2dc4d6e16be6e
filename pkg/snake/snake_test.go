package snake

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func testCommand() (*cobra.Command, *string, *string) {
	var name, weight string
	cmd := &cobra.Command{Use: "add"}
	cmd.Flags().StringVar(&name, "name", "", "Exercise name.")
	cmd.Flags().StringVar(&weight, "weight", "", "Weight.")
	return cmd, &name, &weight
}

func TestFillPromptsOnlyUnsetFlags(t *testing.T) {
	cmd, name, weight := testCommand()
	if err := cmd.Flags().Parse([]string{"--name", "Squat"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	var asked []string
	ask := func(_ *cobra.Command, f *pflag.Flag, required bool) (string, error) {
		asked = append(asked, f.Name)
		if !required {
			t.Fatalf("expected %s to be required", f.Name)
		}
		return "100", nil
	}

	if err := Fill(cmd, ask, Field{Name: "name"}, Field{Name: "weight", Required: true}); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if len(asked) != 1 || asked[0] != "weight" {
		t.Fatalf("asked %v, want [weight]", asked)
	}
	if *name != "Squat" || *weight != "100" {
		t.Fatalf("got name=%q weight=%q", *name, *weight)
	}
}

func TestFillStopsOnError(t *testing.T) {
	cmd, _, weight := testCommand()
	boom := errors.New("interrupted")
	err := Fill(cmd, func(*cobra.Command, *pflag.Flag, bool) (string, error) { return "", boom }, Field{Name: "weight"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if *weight != "" {
		t.Fatalf("weight should be untouched, got %q", *weight)
	}
}

func TestFillUnknownFlag(t *testing.T) {
	cmd, _, _ := testCommand()
	if err := Fill(cmd, nil, Field{Name: "sets"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}
