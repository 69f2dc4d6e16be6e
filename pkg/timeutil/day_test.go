package timeutil

import (
	"testing"
	"time"
)

func TestShiftAcrossBoundaries(t *testing.T) {
	tests := []struct {
		from string
		dir  Direction
		want string
	}{
		{"2024-02-29", Next, "2024-03-01"},
		{"2024-03-01", Previous, "2024-02-29"},
		{"2023-02-28", Next, "2023-03-01"},
		{"2024-12-31", Next, "2025-01-01"},
		{"2025-01-01", Previous, "2024-12-31"},
		{"2024-04-30", Next, "2024-05-01"},
	}
	for _, tt := range tests {
		day, err := ParseDay(tt.from)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.from, err)
		}
		if got := FormatDay(Shift(day, tt.dir)); got != tt.want {
			t.Fatalf("%s %s: expected %s, got %s", tt.from, tt.dir, tt.want, got)
		}
	}
}

func TestShiftNeverSkipsOrRepeats(t *testing.T) {
	day, err := ParseDay("2023-12-25")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	seen := map[string]bool{}
	prev := FormatDay(day)
	for i := 0; i < 800; i++ {
		day = Shift(day, Next)
		key := FormatDay(day)
		if seen[key] {
			t.Fatalf("day %s repeated", key)
		}
		seen[key] = true
		if key <= prev {
			t.Fatalf("day did not advance: %s -> %s", prev, key)
		}
		prev = key
	}
	for i := 0; i < 800; i++ {
		day = Shift(day, Previous)
	}
	if got := FormatDay(day); got != "2023-12-25" {
		t.Fatalf("expected round trip to 2023-12-25, got %s", got)
	}
}

func TestShiftAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	day := time.Date(2024, time.March, 10, 0, 0, 0, 0, loc)
	if got := Shift(day, Next).Format(DayLayout); got != "2024-03-11" {
		t.Fatalf("expected 2024-03-11, got %s", got)
	}
	day = time.Date(2024, time.November, 3, 0, 0, 0, 0, loc)
	if got := Shift(day, Next).Format(DayLayout); got != "2024-11-04" {
		t.Fatalf("expected 2024-11-04, got %s", got)
	}
}

func TestParseDayStrict(t *testing.T) {
	for _, bad := range []string{"", "2024-2-29", "2024/02/29", "29-02-2024", "2023-02-29", "2024-02-29T00:00:00Z"} {
		if _, err := ParseDay(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	day, err := ParseDay("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Hour() != 0 || day.Location() != time.Local {
		t.Fatalf("expected local midnight, got %v", day)
	}
}

func TestFormatDayUsesLocalFields(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	late := time.Date(2024, time.January, 1, 23, 30, 0, 0, loc)
	if got := FormatDay(late); got != "2024-01-01" {
		t.Fatalf("expected local date, got %s", got)
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("prev"); err != nil || d != Previous {
		t.Fatalf("prev: got %v, %v", d, err)
	}
	if d, err := ParseDirection("Next"); err != nil || d != Next {
		t.Fatalf("next: got %v, %v", d, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("expected error")
	}
}
