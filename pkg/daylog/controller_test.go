package daylog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tableflip.dev/liftlog/pkg/client"
	"tableflip.dev/liftlog/pkg/entry"
	"tableflip.dev/liftlog/pkg/timeutil"
)

type apiCall struct {
	Op     string
	Day    string
	ID     string
	Fields entry.Fields
}

func (c apiCall) String() string {
	if c.ID == "" {
		return c.Op + " " + c.Day
	}
	return c.Op + " " + c.Day + "/" + c.ID
}

type fakeAPI struct {
	mu     sync.Mutex
	calls  []apiCall
	days   map[string][]*entry.Entry
	nextID int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// listHook runs after List has read its result, without the lock held.
	listHook func(day string)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{days: make(map[string][]*entry.Entry)}
}

func (f *fakeAPI) seed(day string, entries ...*entry.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days[day] = append(f.days[day], entries...)
}

func (f *fakeAPI) record(c apiCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeAPI) List(_ context.Context, day string) ([]*entry.Entry, error) {
	f.record(apiCall{Op: "list", Day: day})
	f.mu.Lock()
	err := f.listErr
	out := make([]*entry.Entry, 0, len(f.days[day]))
	for _, e := range f.days[day] {
		cp := *e
		out = append(out, &cp)
	}
	hook := f.listHook
	f.mu.Unlock()

	if hook != nil {
		hook(day)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeAPI) Create(_ context.Context, day string, fields entry.Fields) (*entry.Entry, error) {
	f.record(apiCall{Op: "create", Day: day, Fields: fields})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	e := entry.New(fields)
	e.ID = fmt.Sprintf("new-%d", f.nextID)
	e.Index = len(f.days[day])
	f.days[day] = append(f.days[day], e)
	return e, nil
}

func (f *fakeAPI) Update(_ context.Context, day, id string, fields entry.Fields) (*entry.Entry, error) {
	f.record(apiCall{Op: "update", Day: day, ID: id, Fields: fields})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, e := range f.days[day] {
		if e.ID == id {
			e.Apply(fields)
			return e, nil
		}
	}
	return nil, &client.Error{Status: 404, Message: "Entry not found"}
}

func (f *fakeAPI) Delete(_ context.Context, day, id string) error {
	f.record(apiCall{Op: "delete", Day: day, ID: id})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	items := f.days[day]
	for i, e := range items {
		if e.ID == id {
			f.days[day] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return &client.Error{Status: 404, Message: "Entry not found"}
}

type fakePrompter struct {
	mu       sync.Mutex
	answer   bool
	confirms []string
	notes    []string

	// whileOpen runs before Confirm answers, without the lock held.
	whileOpen func()
}

func (p *fakePrompter) Confirm(_ context.Context, message string) bool {
	p.mu.Lock()
	p.confirms = append(p.confirms, message)
	answer, hook := p.answer, p.whileOpen
	p.mu.Unlock()
	if hook != nil {
		hook()
	}
	return answer
}

func (p *fakePrompter) Notify(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, message)
}

type recordRenderer struct {
	mu    sync.Mutex
	views []View
}

func (r *recordRenderer) Render(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recordRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

var leapDay = time.Date(2024, time.February, 29, 9, 30, 0, 0, time.Local)

func squat() *entry.Entry {
	return &entry.Entry{ID: "1", Name: "Squat", Weight: "100", Reps: "5", Sets: "5"}
}

func newController(t *testing.T, api *fakeAPI) (*Controller, *fakePrompter, *recordRenderer) {
	t.Helper()
	p := &fakePrompter{}
	r := &recordRenderer{}
	c := New(api, p, WithDay(leapDay), WithRenderer(r))
	if err := c.Start(context.Background()); err != nil && api.listErr == nil {
		t.Fatalf("start: %v", err)
	}
	api.reset()
	return c, p, r
}

func expectCalls(t *testing.T, api *fakeAPI, want ...string) {
	t.Helper()
	got := api.Calls()
	if len(got) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d: expected %q, got %q (all %v)", i, want[i], got[i], got)
		}
	}
}

func TestStartRendersLoadingThenRows(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	r := &recordRenderer{}
	c := New(api, &fakePrompter{}, WithDay(leapDay), WithRenderer(r))

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	expectCalls(t, api, "list 2024-02-29")
	if len(r.views) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(r.views))
	}
	if r.views[0].Placeholder != PlaceholderLoading || r.views[0].Day != "2024-02-29" {
		t.Fatalf("unexpected first render %#v", r.views[0])
	}
	last := r.views[1]
	if len(last.Rows) != 1 || last.Rows[0].Summary != "100 x 5 x 5" || last.Placeholder != "" {
		t.Fatalf("unexpected rows %#v", last)
	}
}

func TestAddEntryCreatesThenListsSameDay(t *testing.T) {
	api := newFakeAPI()
	c, p, _ := newController(t, api)

	if !c.AddEntry(context.Background(), entry.Fields{Name: "Bench", Weight: "70", Reps: "8", Sets: "3"}) {
		t.Fatalf("expected add to succeed, notes %v", p.notes)
	}
	expectCalls(t, api, "create 2024-02-29", "list 2024-02-29")
	v := c.View()
	if len(v.Rows) != 1 || v.Rows[0].Name != "Bench" {
		t.Fatalf("unexpected view %#v", v)
	}
	if len(p.notes) != 0 {
		t.Fatalf("unexpected notifications %v", p.notes)
	}
}

func TestAddEntryValidation(t *testing.T) {
	tests := map[string]entry.Fields{
		"empty weight": {Name: "Squat", Reps: "5", Sets: "5"},
		"empty reps":   {Weight: "100", Sets: "5"},
		"empty sets":   {Weight: "100", Reps: "5", Sets: ""},
	}
	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			api := newFakeAPI()
			c, p, _ := newController(t, api)
			if c.AddEntry(context.Background(), fields) {
				t.Fatalf("expected add to fail")
			}
			expectCalls(t, api)
			if len(p.notes) != 1 || p.notes[0] != MsgMissingFields {
				t.Fatalf("expected validation alert, got %v", p.notes)
			}
		})
	}
}

func TestAddEntryNameIsOptional(t *testing.T) {
	api := newFakeAPI()
	c, _, _ := newController(t, api)
	if !c.AddEntry(context.Background(), entry.Fields{Weight: "20", Reps: "10", Sets: "3"}) {
		t.Fatalf("expected add without name to succeed")
	}
}

func TestAddEntryFailureShowsServerMessage(t *testing.T) {
	api := newFakeAPI()
	c, p, _ := newController(t, api)
	api.createErr = &client.Error{Status: 400, Message: "date parameter required (YYYY-MM-DD)"}

	if c.AddEntry(context.Background(), entry.Fields{Weight: "1", Reps: "1", Sets: "1"}) {
		t.Fatalf("expected add to fail")
	}
	expectCalls(t, api, "create 2024-02-29")
	if len(p.notes) != 1 || p.notes[0] != "Error: date parameter required (YYYY-MM-DD)" {
		t.Fatalf("unexpected notifications %v", p.notes)
	}

	api.createErr = errors.New("connection refused")
	c.AddEntry(context.Background(), entry.Fields{Weight: "1", Reps: "1", Sets: "1"})
	if p.notes[1] != "Error: unknown" {
		t.Fatalf("expected generic fallback, got %q", p.notes[1])
	}
}

func TestShowEditFormKeepsSingleFormOpen(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat(), &entry.Entry{ID: "2", Name: "Bench", Weight: "70", Reps: "5", Sets: "5", Index: 1})
	c, _, _ := newController(t, api)

	c.ShowEditForm("2")
	c.ShowEditForm("1")

	v := c.View()
	open := 0
	for _, row := range v.Rows {
		if row.Editing {
			open++
			if row.ID != "1" {
				t.Fatalf("expected row 1 editing, got %s", row.ID)
			}
		}
	}
	if open != 1 || v.EditingID != "1" {
		t.Fatalf("expected exactly one open form, got %d (%q)", open, v.EditingID)
	}

	if c.ShowEditForm("missing") {
		t.Fatalf("unknown id should be ignored")
	}
	if c.View().EditingID != "1" {
		t.Fatalf("unknown id changed the open form")
	}

	c.HideEditForm("2")
	if c.View().EditingID != "1" {
		t.Fatalf("hiding another row closed the open form")
	}
	c.HideEditForm("1")
	if c.View().EditingID != "" {
		t.Fatalf("expected form closed")
	}
}

func TestNavigateMovesOneDayAndReloads(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	c, _, r := newController(t, api)
	c.ShowEditForm("1")

	before := r.count()
	if err := c.Navigate(context.Background(), timeutil.Next); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	expectCalls(t, api, "list 2024-03-01")
	v := c.View()
	if v.Day != "2024-03-01" || v.EditingID != "" {
		t.Fatalf("unexpected view %#v", v)
	}
	if v.Placeholder != PlaceholderEmpty {
		t.Fatalf("rows from the previous day leaked: %#v", v)
	}
	if r.count()-before != 2 {
		t.Fatalf("expected a loading render and a loaded render, got %d", r.count()-before)
	}

	_ = c.Navigate(context.Background(), timeutil.Previous)
	if got := c.View(); got.Day != "2024-02-29" || len(got.Rows) != 1 {
		t.Fatalf("unexpected view after going back %#v", got)
	}
}

func TestNavigateAcrossYearBoundary(t *testing.T) {
	api := newFakeAPI()
	c := New(api, nil, WithDay(time.Date(2023, time.December, 31, 23, 59, 0, 0, time.Local)))
	_ = c.Navigate(context.Background(), timeutil.Next)
	if c.Day() != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", c.Day())
	}
	_ = c.Navigate(context.Background(), timeutil.Previous)
	_ = c.Navigate(context.Background(), timeutil.Previous)
	if c.Day() != "2023-12-30" {
		t.Fatalf("expected 2023-12-30, got %s", c.Day())
	}
}

func TestDeleteDeclinedSendsNothing(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	c, p, r := newController(t, api)
	p.answer = false

	before, renders := c.View(), r.count()
	if c.DeleteEntry(context.Background(), "1") {
		t.Fatalf("expected delete to be declined")
	}
	expectCalls(t, api)
	if len(p.confirms) != 1 || p.confirms[0] != MsgConfirmDelete {
		t.Fatalf("expected one confirmation, got %v", p.confirms)
	}
	after := c.View()
	if len(after.Rows) != len(before.Rows) || after.Rows[0].ID != before.Rows[0].ID {
		t.Fatalf("table changed: %#v", after)
	}
	if r.count() != renders {
		t.Fatalf("declined delete re-rendered")
	}
}

func TestDeleteConfirmedReloads(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	c, p, _ := newController(t, api)
	p.answer = true

	if !c.DeleteEntry(context.Background(), "1") {
		t.Fatalf("expected delete to succeed")
	}
	expectCalls(t, api, "delete 2024-02-29/1", "list 2024-02-29")
	if v := c.View(); v.Placeholder != PlaceholderEmpty {
		t.Fatalf("expected empty placeholder, got %#v", v)
	}
}

func TestDeleteUsesDayShownAfterConfirm(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	api.seed("2024-03-01", &entry.Entry{ID: "1", Name: "Row", Weight: "60", Reps: "8", Sets: "3"})
	c, p, _ := newController(t, api)
	p.answer = true
	p.whileOpen = func() {
		_ = c.Navigate(context.Background(), timeutil.Next)
	}

	if !c.DeleteEntry(context.Background(), "1") {
		t.Fatalf("expected delete to succeed")
	}
	expectCalls(t, api, "list 2024-03-01", "delete 2024-03-01/1", "list 2024-03-01")
}

func TestDeleteFailureAlerts(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	c, p, _ := newController(t, api)
	p.answer = true
	api.deleteErr = &client.Error{Status: 500, Message: "internal error"}

	if c.DeleteEntry(context.Background(), "1") {
		t.Fatalf("expected delete to fail")
	}
	expectCalls(t, api, "delete 2024-02-29/1")
	if len(p.notes) != 1 || p.notes[0] != MsgDeleteFailed {
		t.Fatalf("unexpected notifications %v", p.notes)
	}
}

func TestSaveEditShowsUpdatedRowAndClosesForm(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	c, p, _ := newController(t, api)

	if !c.ShowEditForm("1") {
		t.Fatalf("expected form to open")
	}
	if !c.SaveEdit(context.Background(), "1", entry.Fields{Name: "Squat", Weight: "105", Reps: "5", Sets: "5"}) {
		t.Fatalf("expected save to succeed, notes %v", p.notes)
	}
	expectCalls(t, api, "update 2024-02-29/1", "list 2024-02-29")

	v := c.View()
	if v.EditingID != "" {
		t.Fatalf("expected form closed, got %q", v.EditingID)
	}
	if len(v.Rows) != 1 || v.Rows[0].Summary != "105 x 5 x 5" || v.Rows[0].Editing {
		t.Fatalf("unexpected rows %#v", v.Rows)
	}
}

func TestUpdateFailureKeepsFormOpen(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	c, p, _ := newController(t, api)
	c.ShowEditForm("1")
	api.updateErr = &client.Error{Status: 404, Message: "Entry not found"}

	if c.SaveEdit(context.Background(), "1", entry.Fields{Weight: "105", Reps: "5", Sets: "5"}) {
		t.Fatalf("expected save to fail")
	}
	expectCalls(t, api, "update 2024-02-29/1")
	if c.View().EditingID != "1" {
		t.Fatalf("form should stay open on failure")
	}
	if len(p.notes) != 1 || p.notes[0] != "Failed to update entry: Entry not found" {
		t.Fatalf("unexpected notifications %v", p.notes)
	}

	if c.UpdateEntry(context.Background(), "1", entry.Fields{Reps: "5", Sets: "5"}) {
		t.Fatalf("expected validation failure")
	}
	if p.notes[1] != MsgMissingFields {
		t.Fatalf("expected validation alert, got %q", p.notes[1])
	}
}

func TestUpdateTargetsDisplayedDay(t *testing.T) {
	api := newFakeAPI()
	c, _, _ := newController(t, api)
	_ = c.Navigate(context.Background(), timeutil.Previous)
	api.reset()

	c.UpdateEntry(context.Background(), "1", entry.Fields{Weight: "1", Reps: "1", Sets: "1"})
	expectCalls(t, api, "update 2024-02-28/1")
}

func TestEmptyDayShowsPlaceholder(t *testing.T) {
	api := newFakeAPI()
	c, _, r := newController(t, api)

	v := c.View()
	if v.Rows == nil || len(v.Rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", v.Rows)
	}
	if v.Placeholder != PlaceholderEmpty {
		t.Fatalf("expected %q, got %q", PlaceholderEmpty, v.Placeholder)
	}
	if last := r.views[len(r.views)-1]; last.Placeholder != PlaceholderEmpty {
		t.Fatalf("renderer did not receive placeholder: %#v", last)
	}
}

func TestLoadFailureShowsPlaceholderWithoutAlert(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	api.listErr = &client.Error{Status: 500}
	c, p, _ := newController(t, api)

	if err := c.LoadEntries(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	v := c.View()
	if v.Placeholder != PlaceholderFailed || len(v.Rows) != 0 {
		t.Fatalf("unexpected view %#v", v)
	}
	if len(p.notes) != 0 {
		t.Fatalf("list failures must not alert, got %v", p.notes)
	}
}

func TestReloadClosesFormOfRemovedEntry(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	c, _, _ := newController(t, api)
	c.ShowEditForm("1")

	api.mu.Lock()
	api.days["2024-02-29"] = nil
	api.mu.Unlock()
	_ = c.LoadEntries(context.Background())

	if c.View().EditingID != "" {
		t.Fatalf("expected form for removed entry to close")
	}
}

func TestStaleListResponseIsDiscarded(t *testing.T) {
	api := newFakeAPI()
	api.seed("2024-02-29", squat())
	api.seed("2024-03-01", &entry.Entry{ID: "9", Name: "Deadlift", Weight: "140", Reps: "3", Sets: "3"})
	c := New(api, nil, WithDay(leapDay))

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	api.listHook = func(day string) {
		if day != "2024-02-29" {
			return
		}
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	done := make(chan error, 1)
	go func() { done <- c.LoadEntries(context.Background()) }()
	<-entered

	if err := c.Navigate(context.Background(), timeutil.Next); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("stale load: %v", err)
	}

	v := c.View()
	if v.Day != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s", v.Day)
	}
	if len(v.Rows) != 1 || v.Rows[0].ID != "9" {
		t.Fatalf("stale response overwrote the table: %#v", v.Rows)
	}
}

func TestOlderListOnSameDayIsDiscarded(t *testing.T) {
	api := newFakeAPI()
	c := New(api, nil, WithDay(leapDay))

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	api.listHook = func(string) {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	done := make(chan error, 1)
	go func() { done <- c.LoadEntries(context.Background()) }()
	<-entered

	// The first request saw an empty day; the second sees the new entry.
	api.seed("2024-02-29", squat())
	if err := c.LoadEntries(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	close(release)
	<-done

	if v := c.View(); len(v.Rows) != 1 {
		t.Fatalf("older response replaced newer rows: %#v", v)
	}
}
