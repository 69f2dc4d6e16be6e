package teaui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/liftlog/pkg/daylog"
)

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge lets the day log controller talk to the Bubble Tea program. It
// implements daylog.Prompter and daylog.Renderer by posting messages; it must
// only be used from command goroutines, never from Update.
type Bridge struct {
	mu     sync.Mutex
	sender Sender
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach wires the bridge to a program. Messages sent before Attach are
// dropped and confirmations are declined.
func (b *Bridge) Attach(s Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sender = s
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.Lock()
	s := b.sender
	b.mu.Unlock()
	if s == nil {
		return false
	}
	s.Send(msg)
	return true
}

// Render implements daylog.Renderer.
func (b *Bridge) Render(v daylog.View) {
	b.send(viewMsg{view: v})
}

// Notify implements daylog.Prompter.
func (b *Bridge) Notify(message string) {
	b.send(notifyMsg{message: message})
}

// Confirm implements daylog.Prompter. It waits for the user's answer or for
// ctx to end.
func (b *Bridge) Confirm(ctx context.Context, message string) bool {
	reply := make(chan bool, 1)
	if !b.send(confirmMsg{message: message, reply: reply}) {
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

var (
	_ daylog.Prompter = (*Bridge)(nil)
	_ daylog.Renderer = (*Bridge)(nil)
)
