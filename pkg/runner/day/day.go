package day

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/liftlog/pkg/daylog"
	"tableflip.dev/liftlog/pkg/entry"
	"tableflip.dev/liftlog/pkg/printers"
)

// ErrReported marks failures whose message was already shown to the user.
var ErrReported = errors.New("day: reported")

// Failure is an operation the controller refused or the server rejected.
type Failure struct {
	Message string
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Is(target error) bool { return target == ErrReported }

// Day runs a single day log operation from the command line and prints the
// resulting day.
type Day struct {
	API daylog.API
	On  time.Time

	Yes     bool
	JSON    bool
	ShowID  bool
	Confirm ConfirmFunc

	Out io.Writer
	Err io.Writer
	Log *zap.Logger
}

// Patch carries the fields an edit changes; nil means keep.
type Patch struct {
	Name   *string
	Weight *string
	Reps   *string
	Sets   *string
}

// Apply returns f with the patch applied.
func (p Patch) Apply(f entry.Fields) entry.Fields {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Weight != nil {
		f.Weight = entry.Value(*p.Weight)
	}
	if p.Reps != nil {
		f.Reps = entry.Value(*p.Reps)
	}
	if p.Sets != nil {
		f.Sets = entry.Value(*p.Sets)
	}
	return f
}

func (d *Day) out() io.Writer {
	if d.Out == nil {
		return color.Output
	}
	return d.Out
}

func (d *Day) errOut() io.Writer {
	if d.Err == nil {
		return os.Stderr
	}
	return d.Err
}

func (d *Day) controller() (*daylog.Controller, *terminalPrompter) {
	p := &terminalPrompter{
		yes:     d.Yes,
		quiet:   d.JSON,
		confirm: d.Confirm,
		err:     d.errOut(),
	}
	on := d.On
	if on.IsZero() {
		on = time.Now()
	}
	return daylog.New(d.API, p, daylog.WithDay(on), daylog.WithLogger(d.Log)), p
}

// List prints the day.
func (d *Day) List(ctx context.Context) error {
	c, _ := d.controller()
	if err := c.LoadEntries(ctx); err != nil {
		if perr := d.print(c.View()); perr != nil {
			return perr
		}
		return &Failure{Message: daylog.PlaceholderFailed}
	}
	return d.print(c.View())
}

// Add creates an entry and prints the reloaded day.
func (d *Day) Add(ctx context.Context, f entry.Fields) error {
	c, p := d.controller()
	if !c.AddEntry(ctx, f) {
		return &Failure{Message: p.lastNotice()}
	}
	return d.finish(c)
}

// Edit changes an entry through the same open-form-then-save flow the
// interactive UI uses.
func (d *Day) Edit(ctx context.Context, id string, patch Patch) error {
	c, p := d.controller()
	if err := c.LoadEntries(ctx); err != nil {
		return &Failure{Message: daylog.PlaceholderFailed}
	}
	row, ok := c.View().Row(id)
	if !ok || !c.ShowEditForm(id) {
		return fmt.Errorf("no entry %q on %s", id, c.Day())
	}
	if !c.SaveEdit(ctx, id, patch.Apply(row.Fields())) {
		return &Failure{Message: p.lastNotice()}
	}
	return d.finish(c)
}

// Remove deletes an entry after confirmation. Declining is not an error.
func (d *Day) Remove(ctx context.Context, id string) error {
	c, p := d.controller()
	if err := c.LoadEntries(ctx); err != nil {
		return &Failure{Message: daylog.PlaceholderFailed}
	}
	if _, ok := c.View().Row(id); !ok {
		return fmt.Errorf("no entry %q on %s", id, c.Day())
	}
	if !c.DeleteEntry(ctx, id) {
		if msg := p.lastNotice(); msg != "" {
			return &Failure{Message: msg}
		}
		_, _ = fmt.Fprintln(d.errOut(), "Delete cancelled")
		return nil
	}
	return d.finish(c)
}

// finish prints the day after a mutation. The mutation itself succeeded, but
// a failed reload is still an error.
func (d *Day) finish(c *daylog.Controller) error {
	v := c.View()
	if err := d.print(v); err != nil {
		return err
	}
	if v.Placeholder == daylog.PlaceholderFailed {
		return &Failure{Message: daylog.PlaceholderFailed}
	}
	return nil
}

func (d *Day) print(v daylog.View) error {
	if d.JSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(d.out(), string(b))
		return err
	}
	pp := printers.PrettyPrint{Out: d.out(), ShowID: d.ShowID}
	pp.Day(v)
	return nil
}
