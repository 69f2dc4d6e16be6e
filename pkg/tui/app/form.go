package teaui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/liftlog/pkg/entry"
	"tableflip.dev/liftlog/pkg/tui/theme"
)

var fieldLabels = [...]string{"Name", "Weight", "Reps", "Sets"}

const (
	fieldName = iota
	fieldWeight
	fieldReps
	fieldSets
	fieldCount
)

// entryForm is the four-field add/edit form.
type entryForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	// targetID is the entry being edited; empty when adding.
	targetID string
}

func newEntryForm() entryForm {
	var f entryForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Placeholder = strings.ToLower(fieldLabels[i])
		ti.Styles.Cursor.Color = lipgloss.Color("218")
		f.inputs[i] = ti
	}
	return f
}

// open prepares the form for target, prefilled with fields, and focuses the
// first input.
func (f *entryForm) open(targetID string, fields entry.Fields) tea.Cmd {
	f.targetID = targetID
	f.inputs[fieldName].SetValue(fields.Name)
	f.inputs[fieldWeight].SetValue(fields.Weight.String())
	f.inputs[fieldReps].SetValue(fields.Reps.String())
	f.inputs[fieldSets].SetValue(fields.Sets.String())
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	return f.setFocus(fieldName)
}

func (f *entryForm) reset() {
	f.targetID = ""
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = fieldName
}

func (f *entryForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return tea.Batch(cmd, textinput.Blink)
}

func (f *entryForm) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *entryForm) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f *entryForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *entryForm) fields() entry.Fields {
	return entry.Fields{
		Name:   strings.TrimSpace(f.inputs[fieldName].Value()),
		Weight: entry.Value(strings.TrimSpace(f.inputs[fieldWeight].Value())),
		Reps:   entry.Value(strings.TrimSpace(f.inputs[fieldReps].Value())),
		Sets:   entry.Value(strings.TrimSpace(f.inputs[fieldSets].Value())),
	}
}

func (f *entryForm) view(th theme.FormTheme, title string) string {
	lines := []string{th.Title.Render(title)}
	for i := range f.inputs {
		label := th.Label
		if i == f.focus {
			label = th.FocusedLabel
		}
		lines = append(lines, label.Render(fieldLabels[i])+" "+f.inputs[i].View())
	}
	return th.Frame.Render(strings.Join(lines, "\n"))
}
