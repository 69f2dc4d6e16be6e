package day

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
)

// ConfirmFunc asks a yes/no question.
type ConfirmFunc func(message string) (bool, error)

// PromptConfirm asks on the terminal with promptui.
func PromptConfirm(message string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// terminalPrompter implements daylog.Prompter for one-shot commands. It
// remembers the last notification so the command can fail with it.
type terminalPrompter struct {
	yes     bool
	quiet   bool
	confirm ConfirmFunc
	err     io.Writer

	mu   sync.Mutex
	last string
}

func (p *terminalPrompter) Confirm(_ context.Context, message string) bool {
	if p.yes {
		return true
	}
	if p.confirm == nil {
		return false
	}
	ok, err := p.confirm(message)
	if err != nil {
		_, _ = fmt.Fprintf(p.err, "prompt failed: %v\n", err)
		return false
	}
	return ok
}

func (p *terminalPrompter) Notify(message string) {
	p.mu.Lock()
	p.last = message
	p.mu.Unlock()
	if p.quiet {
		return
	}
	_, _ = color.New(color.FgRed, color.Bold).Fprintln(p.err, message)
}

func (p *terminalPrompter) lastNotice() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
