// Package snake fills in cobra flags interactively with promptui.
package snake

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Ask reads one answer for a flag. required means an empty answer is not
// accepted.
type Ask func(cmd *cobra.Command, f *pflag.Flag, required bool) (string, error)

// Field names a flag to prompt for.
type Field struct {
	Name     string
	Required bool
}

// Fill prompts for every field whose flag was not given on the command line
// and sets the answers on the flag set. A nil ask uses PromptString.
func Fill(cmd *cobra.Command, ask Ask, fields ...Field) error {
	if ask == nil {
		ask = PromptString
	}
	for _, field := range fields {
		f := cmd.Flags().Lookup(field.Name)
		if f == nil {
			return fmt.Errorf("snake: unknown flag %q", field.Name)
		}
		if f.Changed {
			continue
		}
		answer, err := ask(cmd, f, field.Required)
		if err != nil {
			return err
		}
		if err := cmd.Flags().Set(f.Name, answer); err != nil {
			return err
		}
	}
	return nil
}

func asFlags(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s", f.Name, f.Shorthand)
	}
	return fmt.Sprintf("--%s", f.Name)
}

// PromptString asks for a string flag on the command's terminal.
func PromptString(cmd *cobra.Command, f *pflag.Flag, required bool) (string, error) {
	validate := func(input string) error {
		if required && len(input) == 0 && len(f.DefValue) == 0 {
			return errors.New("empty")
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s (%s)", f.Usage, asFlags(f)),
		Default:   f.DefValue,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopCloser{cmd.ErrOrStderr()},
	}

	return prompt.Run()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
