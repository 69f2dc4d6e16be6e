package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the wire and storage format of a day key.
const DayLayout = "2006-01-02"

// Direction moves the displayed day backwards or forwards.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Previous:
		return "previous"
	case Next:
		return "next"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts the spellings used by flags and key bindings.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous", "back", "-1", "-":
		return Previous, nil
	case "next", "forward", "+1", "1", "+":
		return Next, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (expected prev or next)", s)
	}
}

// FormatDay renders the local calendar date of t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a strict, zero-padded YYYY-MM-DD key as local midnight.
func ParseDay(s string) (time.Time, error) {
	if len(s) != len(DayLayout) {
		return time.Time{}, fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", s)
	}
	t, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ValidDay reports whether s is a well-formed day key.
func ValidDay(s string) bool {
	_, err := ParseDay(s)
	return err == nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Shift moves t by exactly one calendar day. AddDate normalises month and
// year rollover, and starting from midnight keeps DST changes from skipping
// or repeating a day.
func Shift(t time.Time, d Direction) time.Time {
	step := 0
	switch {
	case d < 0:
		step = -1
	case d > 0:
		step = 1
	}
	return StartOfDay(t).AddDate(0, 0, step)
}
