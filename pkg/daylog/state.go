package daylog

import (
	"time"

	"tableflip.dev/liftlog/pkg/timeutil"
)

// State is everything the day log tracks between events. It is a plain value;
// transitions go through Reduce.
type State struct {
	Day       time.Time
	EditingID string
	// LoadSeq counts issued list requests. A response tagged with an older
	// sequence is stale.
	LoadSeq uint64
}

// NewState starts at the calendar day containing t.
func NewState(t time.Time) State {
	return State{Day: timeutil.StartOfDay(t)}
}

// DayKey is the YYYY-MM-DD key of the current day.
func (s State) DayKey() string {
	return timeutil.FormatDay(s.Day)
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Navigated moves one calendar day in Direction.
type Navigated struct {
	Direction timeutil.Direction
}

// EditShown opens the inline form for ID, closing any other.
type EditShown struct {
	ID string
}

// EditHidden closes the inline form for ID.
type EditHidden struct {
	ID string
}

// LoadIssued records that a list request went out for the current day.
type LoadIssued struct{}

func (Navigated) isEvent()  {}
func (EditShown) isEvent()  {}
func (EditHidden) isEvent() {}
func (LoadIssued) isEvent() {}

// Reduce returns the state after ev. It never mutates s.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case Navigated:
		s.Day = timeutil.Shift(s.Day, ev.Direction)
		s.EditingID = ""
	case EditShown:
		s.EditingID = ev.ID
	case EditHidden:
		if s.EditingID == ev.ID {
			s.EditingID = ""
		}
	case LoadIssued:
		s.LoadSeq++
	}
	return s
}
