package daylog

import (
	"tableflip.dev/liftlog/pkg/entry"
)

// Placeholder texts shown instead of rows.
const (
	PlaceholderEmpty   = "No entries for this day"
	PlaceholderFailed  = "Failed to load entries"
	PlaceholderLoading = "Loading…"
)

// View is the declarative snapshot a Renderer draws.
type View struct {
	Day         string `json:"day"`
	Rows        []Row  `json:"rows"`
	Placeholder string `json:"placeholder,omitempty"`
	EditingID   string `json:"editingId,omitempty"`
}

// Row is one rendered entry.
type Row struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Weight  string `json:"weight"`
	Reps    string `json:"reps"`
	Sets    string `json:"sets"`
	Summary string `json:"summary"`
	Editing bool   `json:"editing"`
}

// Fields returns the editable values of the row, used to prefill a form.
func (r Row) Fields() entry.Fields {
	return entry.Fields{
		Name:   r.Name,
		Weight: entry.Value(r.Weight),
		Reps:   entry.Value(r.Reps),
		Sets:   entry.Value(r.Sets),
	}
}

// Row finds a row by id.
func (v View) Row(id string) (Row, bool) {
	for _, r := range v.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

type loadStatus int

const (
	statusLoading loadStatus = iota
	statusLoaded
	statusFailed
)

func buildView(s State, status loadStatus, entries []*entry.Entry) View {
	v := View{
		Day:       s.DayKey(),
		Rows:      []Row{},
		EditingID: s.EditingID,
	}
	switch status {
	case statusLoading:
		v.Placeholder = PlaceholderLoading
		return v
	case statusFailed:
		v.Placeholder = PlaceholderFailed
		return v
	}
	if len(entries) == 0 {
		v.Placeholder = PlaceholderEmpty
		return v
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		v.Rows = append(v.Rows, Row{
			ID:      e.ID,
			Name:    e.Name,
			Weight:  e.Weight.String(),
			Reps:    e.Reps.String(),
			Sets:    e.Sets.String(),
			Summary: e.Summary(),
			Editing: e.ID == s.EditingID,
		})
	}
	return v
}
