package daylog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/liftlog/pkg/client"
	"tableflip.dev/liftlog/pkg/entry"
	"tableflip.dev/liftlog/pkg/timeutil"
)

// User facing messages.
const (
	MsgMissingFields  = "Enter weight, reps and sets"
	MsgConfirmDelete  = "Delete this entry?"
	MsgDeleteFailed   = "Failed to delete entry"
	msgAddFailed      = "Error: "
	msgUpdateFailed   = "Failed to update entry: "
	msgUnknownFailure = "unknown"
)

// API is the remote entry store, scoped by day key.
type API interface {
	List(ctx context.Context, day string) ([]*entry.Entry, error)
	Create(ctx context.Context, day string, f entry.Fields) (*entry.Entry, error)
	Update(ctx context.Context, day, id string, f entry.Fields) (*entry.Entry, error)
	Delete(ctx context.Context, day, id string) error
}

// Prompter asks the user to confirm and shows notifications. Confirm may wait
// for the user but must not block the UI that answers it.
type Prompter interface {
	Confirm(ctx context.Context, message string) bool
	Notify(message string)
}

// Renderer draws a View.
type Renderer interface {
	Render(View)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(View)

func (f RenderFunc) Render(v View) { f(v) }

// Controller drives one day log session. All methods are safe for concurrent
// use; network calls are made without holding the state lock.
type Controller struct {
	api    API
	prompt Prompter
	render Renderer
	log    *zap.Logger

	mu      sync.Mutex
	state   State
	status  loadStatus
	entries []*entry.Entry

	// renderMu keeps renders in the order their snapshots were taken.
	renderMu sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithDay sets the initial day. The default is today.
func WithDay(t time.Time) Option {
	return func(c *Controller) {
		c.state = NewState(t)
	}
}

func WithRenderer(r Renderer) Option {
	return func(c *Controller) {
		c.render = r
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a controller on top of api. A nil prompter declines every
// confirmation and drops notifications.
func New(api API, prompt Prompter, opts ...Option) *Controller {
	c := &Controller{
		api:    api,
		prompt: prompt,
		log:    zap.NewNop(),
		state:  NewState(time.Now()),
		status: statusLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.prompt == nil {
		c.prompt = silentPrompter{}
	}
	return c
}

// Start renders the current day and loads its entries.
func (c *Controller) Start(ctx context.Context) error {
	c.publish()
	return c.LoadEntries(ctx)
}

// Navigate moves one day in dir, closes any open form and reloads.
func (c *Controller) Navigate(ctx context.Context, dir timeutil.Direction) error {
	c.mu.Lock()
	c.state = Reduce(c.state, Navigated{Direction: dir})
	c.status = statusLoading
	c.entries = nil
	c.mu.Unlock()

	c.publish()
	return c.LoadEntries(ctx)
}

// LoadEntries fetches the current day and replaces the rows. A failure shows
// the error placeholder and is returned. Responses overtaken by a newer
// request or a day change are dropped.
func (c *Controller) LoadEntries(ctx context.Context) error {
	c.mu.Lock()
	c.state = Reduce(c.state, LoadIssued{})
	seq, day := c.state.LoadSeq, c.state.DayKey()
	c.mu.Unlock()

	entries, err := c.api.List(ctx, day)

	c.mu.Lock()
	if c.state.LoadSeq != seq || c.state.DayKey() != day {
		current := c.state.DayKey()
		c.mu.Unlock()
		c.log.Debug("discarding stale entry list",
			zap.String("day", day),
			zap.String("current", current),
			zap.Uint64("seq", seq))
		return nil
	}
	if err != nil {
		c.status = statusFailed
		c.entries = nil
	} else {
		c.status = statusLoaded
		c.entries = entries
		if c.state.EditingID != "" && !hasEntry(entries, c.state.EditingID) {
			c.state = Reduce(c.state, EditHidden{ID: c.state.EditingID})
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("failed to load entries", zap.String("day", day), zap.Error(err))
	}
	c.publish()
	return err
}

// AddEntry creates an entry on the current day. It reports success so the
// caller can clear its inputs.
func (c *Controller) AddEntry(ctx context.Context, f entry.Fields) bool {
	if err := f.Validate(); err != nil {
		c.prompt.Notify(MsgMissingFields)
		return false
	}
	day := c.Day()
	if _, err := c.api.Create(ctx, day, f); err != nil {
		c.log.Info("create failed", zap.String("day", day), zap.Error(err))
		c.prompt.Notify(msgAddFailed + messageOf(err))
		return false
	}
	_ = c.LoadEntries(ctx)
	return true
}

// DeleteEntry asks for confirmation and deletes id from the current day.
func (c *Controller) DeleteEntry(ctx context.Context, id string) bool {
	if !c.prompt.Confirm(ctx, MsgConfirmDelete) {
		return false
	}
	// The day may have changed while the prompt was open.
	day := c.Day()
	if err := c.api.Delete(ctx, day, id); err != nil {
		c.log.Info("delete failed", zap.String("day", day), zap.String("id", id), zap.Error(err))
		c.prompt.Notify(MsgDeleteFailed)
		return false
	}
	_ = c.LoadEntries(ctx)
	return true
}

// UpdateEntry saves f over id on the current day. The caller decides what to
// do with the form; see SaveEdit.
func (c *Controller) UpdateEntry(ctx context.Context, id string, f entry.Fields) bool {
	if err := f.Validate(); err != nil {
		c.prompt.Notify(MsgMissingFields)
		return false
	}
	day := c.Day()
	if _, err := c.api.Update(ctx, day, id, f); err != nil {
		c.log.Info("update failed", zap.String("day", day), zap.String("id", id), zap.Error(err))
		c.prompt.Notify(msgUpdateFailed + messageOf(err))
		return false
	}
	return true
}

// SaveEdit updates id and, on success, closes its form and reloads. On
// failure the form stays open.
func (c *Controller) SaveEdit(ctx context.Context, id string, f entry.Fields) bool {
	if !c.UpdateEntry(ctx, id, f) {
		return false
	}
	c.HideEditForm(id)
	_ = c.LoadEntries(ctx)
	return true
}

// ShowEditForm opens the form for id and closes any other. Unknown ids are
// ignored.
func (c *Controller) ShowEditForm(id string) bool {
	c.mu.Lock()
	if c.status != statusLoaded || !hasEntry(c.entries, id) {
		c.mu.Unlock()
		return false
	}
	c.state = Reduce(c.state, EditShown{ID: id})
	c.mu.Unlock()

	c.publish()
	return true
}

// HideEditForm closes the form for id if it is the open one.
func (c *Controller) HideEditForm(id string) {
	c.mu.Lock()
	before := c.state.EditingID
	c.state = Reduce(c.state, EditHidden{ID: id})
	changed := before != c.state.EditingID
	c.mu.Unlock()

	if changed {
		c.publish()
	}
}

// View returns the current view model.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildView(c.state, c.status, c.entries)
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Day is the current day key.
func (c *Controller) Day() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.DayKey()
}

func (c *Controller) publish() {
	if c.render == nil {
		return
	}
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	c.render.Render(c.View())
}

func hasEntry(entries []*entry.Entry, id string) bool {
	for _, e := range entries {
		if e != nil && e.ID == id {
			return true
		}
	}
	return false
}

func messageOf(err error) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}
	return msgUnknownFailure
}

type silentPrompter struct{}

func (silentPrompter) Confirm(context.Context, string) bool { return false }
func (silentPrompter) Notify(string)                        {}
