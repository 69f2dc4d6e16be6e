// Package teaui hosts the Bubble Tea program for the liftlog day view.
package teaui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/liftlog/pkg/daylog"
	"tableflip.dev/liftlog/pkg/entry"
	"tableflip.dev/liftlog/pkg/timeutil"
	"tableflip.dev/liftlog/pkg/tui/theme"
)

// Controller is the part of *daylog.Controller the UI drives.
type Controller interface {
	Start(ctx context.Context) error
	Navigate(ctx context.Context, dir timeutil.Direction) error
	LoadEntries(ctx context.Context) error
	AddEntry(ctx context.Context, f entry.Fields) bool
	DeleteEntry(ctx context.Context, id string) bool
	SaveEdit(ctx context.Context, id string, f entry.Fields) bool
	ShowEditForm(id string) bool
	HideEditForm(id string)
	View() daylog.View
}

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
)

const helpText = "h/l day · j/k move · a add · e edit · d delete · r reload · q quit"

// messages
type viewMsg struct{ view daylog.View }
type notifyMsg struct{ message string }
type confirmMsg struct {
	message string
	reply   chan<- bool
}
type addedMsg struct{ ok bool }
type savedMsg struct {
	id string
	ok bool
}

// Model contains UI state. Every controller call runs inside a command so
// the controller's renders and prompts can reach the program.
type Model struct {
	ctrl  Controller
	ctx   context.Context
	theme theme.Theme

	view   daylog.View
	cursor int
	mode   mode
	form   entryForm

	pending *confirmMsg
	banner  string

	termWidth  int
	termHeight int
}

// New creates a UI model driving ctrl.
func New(ctx context.Context, ctrl Controller) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctrl:  ctrl,
		ctx:   ctx,
		theme: theme.Default(),
		form:  newEntryForm(),
	}
	if ctrl != nil {
		m.view = ctrl.View()
	}
	return m
}

// Init starts the controller, which renders and loads the first day.
func (m Model) Init() tea.Cmd {
	return m.run(func(ctx context.Context) tea.Msg {
		_ = m.ctrl.Start(ctx)
		return nil
	})
}

func (m Model) run(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg { return fn(ctx) }
}

func (m Model) navigate(dir timeutil.Direction) tea.Cmd {
	return m.run(func(ctx context.Context) tea.Msg {
		_ = m.ctrl.Navigate(ctx, dir)
		return nil
	})
}

func (m Model) reload() tea.Cmd {
	return m.run(func(ctx context.Context) tea.Msg {
		_ = m.ctrl.LoadEntries(ctx)
		return nil
	})
}

func (m Model) addEntry(f entry.Fields) tea.Cmd {
	return m.run(func(ctx context.Context) tea.Msg {
		return addedMsg{ok: m.ctrl.AddEntry(ctx, f)}
	})
}

func (m Model) saveEdit(id string, f entry.Fields) tea.Cmd {
	return m.run(func(ctx context.Context) tea.Msg {
		return savedMsg{id: id, ok: m.ctrl.SaveEdit(ctx, id, f)}
	})
}

func (m Model) deleteEntry(id string) tea.Cmd {
	return m.run(func(ctx context.Context) tea.Msg {
		m.ctrl.DeleteEntry(ctx, id)
		return nil
	})
}

func (m Model) showEdit(id string) tea.Cmd {
	return m.run(func(context.Context) tea.Msg {
		m.ctrl.ShowEditForm(id)
		return nil
	})
}

func (m Model) hideEdit(id string) tea.Cmd {
	return m.run(func(context.Context) tea.Msg {
		m.ctrl.HideEditForm(id)
		return nil
	})
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil
	case viewMsg:
		m.applyView(msg.view)
		return m, nil
	case notifyMsg:
		m.banner = msg.message
		return m, nil
	case confirmMsg:
		m.answer(false)
		m.pending = &msg
		return m, nil
	case addedMsg:
		if msg.ok && m.mode == modeAdd {
			m.closeForm()
		}
		return m, nil
	case savedMsg:
		if msg.ok && m.mode == modeEdit && m.form.targetID == msg.id {
			m.closeForm()
		}
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.mode != modeNormal {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.banner = ""

	if key == "ctrl+c" {
		m.answer(false)
		return *m, tea.Quit
	}

	if m.pending != nil {
		switch key {
		case "y", "Y", "enter":
			m.answer(true)
		case "n", "N", "esc", "q":
			m.answer(false)
		}
		return *m, nil
	}

	switch m.mode {
	case modeAdd, modeEdit:
		return *m, m.handleFormKey(msg)
	}

	switch key {
	case "q":
		return *m, tea.Quit
	case "h", "left":
		return *m, m.navigate(timeutil.Previous)
	case "l", "right":
		return *m, m.navigate(timeutil.Next)
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.view.Rows) - 1
		m.clampCursor()
	case "r":
		return *m, m.reload()
	case "a":
		m.mode = modeAdd
		return *m, m.form.open("", entry.Fields{})
	case "e", "enter":
		row, ok := m.selectedRow()
		if !ok {
			return *m, nil
		}
		m.mode = modeEdit
		return *m, tea.Batch(m.form.open(row.ID, row.Fields()), m.showEdit(row.ID))
	case "d", "x":
		row, ok := m.selectedRow()
		if !ok {
			return *m, nil
		}
		return *m, m.deleteEntry(row.ID)
	}
	return *m, nil
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		var cmd tea.Cmd
		if m.mode == modeEdit {
			cmd = m.hideEdit(m.form.targetID)
		}
		m.closeForm()
		return cmd
	case "tab", "down":
		return m.form.next()
	case "shift+tab", "up":
		return m.form.prev()
	case "enter":
		f := m.form.fields()
		if m.mode == modeEdit {
			return m.saveEdit(m.form.targetID, f)
		}
		return m.addEntry(f)
	}
	return m.form.update(msg)
}

func (m *Model) applyView(v daylog.View) {
	m.view = v
	m.clampCursor()
	if m.mode != modeEdit || v.Placeholder == daylog.PlaceholderLoading {
		return
	}
	if _, ok := v.Row(m.form.targetID); !ok {
		m.closeForm()
	}
}

func (m *Model) answer(ok bool) {
	if m.pending == nil {
		return
	}
	m.pending.reply <- ok
	m.pending = nil
}

func (m *Model) closeForm() {
	m.form.reset()
	m.mode = modeNormal
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.view.Rows) {
		m.cursor = len(m.view.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedRow() (daylog.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return daylog.Row{}, false
	}
	return m.view.Rows[m.cursor], true
}

// View renders the day.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.form.view(m.theme.Form, "New entry"))
	}
	if m.pending != nil {
		b.WriteString("\n")
		body := m.theme.Modal.Title.Render(m.pending.message) + "\n" + m.theme.Modal.Body.Render("y confirm · n cancel")
		b.WriteString(m.theme.Modal.Frame.Render(body))
	}
	b.WriteString("\n")
	if m.banner != "" {
		b.WriteString(m.theme.Footer.Banner.Render(m.banner))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Footer.Help.Render(helpText))
	return b.String()
}

func (m Model) renderHeader() string {
	day := m.view.Day
	if t, err := timeutil.ParseDay(day); err == nil {
		day = t.Format("Mon ") + day
	}
	return m.theme.Header.Title.Render("liftlog") + "  " + m.theme.Header.Day.Render(day)
}

func (m Model) nameWidth() int {
	const fixed = 2 + 1 + 8 + 6 + 6
	w := 24
	if m.termWidth > 0 {
		w = m.termWidth - fixed
	}
	if w < 8 {
		w = 8
	}
	if w > 40 {
		w = 40
	}
	return w
}

func (m Model) renderTable() string {
	th := m.theme.Table
	nameW := m.nameWidth()
	lines := []string{th.Head.Render(formatRow("  ", "Name", "Weight", "Reps", "Sets", nameW))}

	if m.view.Placeholder != "" {
		lines = append(lines, th.Placeholder.Render("  "+m.view.Placeholder))
		return strings.Join(lines, "\n")
	}
	for i, row := range m.view.Rows {
		marker := "  "
		if i == m.cursor {
			marker = "→ "
		}
		name := row.Name
		if name == "" {
			name = "-"
		}
		line := formatRow(marker, truncate.StringWithTail(name, uint(nameW), "…"), row.Weight, row.Reps, row.Sets, nameW)
		switch {
		case i == m.cursor:
			line = th.Selected.Render(line)
		case row.Editing:
			line = th.Editing.Render(line)
		default:
			line = th.Row.Render(line)
		}
		lines = append(lines, line)
		if row.Editing && m.mode == modeEdit && m.form.targetID == row.ID {
			form := m.form.view(m.theme.Form, "Edit "+row.Summary)
			lines = append(lines, lipgloss.NewStyle().MarginLeft(4).Render(form))
		}
	}
	return strings.Join(lines, "\n")
}

func formatRow(marker, name, weight, reps, sets string, nameW int) string {
	return marker + lipgloss.NewStyle().Width(nameW).Render(name) +
		fmt.Sprintf(" %8s%6s%6s", weight, reps, sets)
}

// Run launches the interactive day view against api until the user quits or
// ctx ends.
func Run(ctx context.Context, api daylog.API, opts ...daylog.Option) error {
	bridge := NewBridge()
	ctrl := daylog.New(api, bridge, append(opts, daylog.WithRenderer(bridge))...)
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(p)
	_, err := p.Run()
	return err
}
