package entry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		missing []string
	}{
		{name: "complete", fields: Fields{Name: "Squat", Weight: "100", Reps: "5", Sets: "5"}},
		{name: "empty name allowed", fields: Fields{Weight: "100", Reps: "5", Sets: "5"}},
		{name: "empty weight", fields: Fields{Name: "Squat", Reps: "5", Sets: "5"}, missing: []string{"weight"}},
		{name: "empty reps", fields: Fields{Weight: "100", Reps: "", Sets: "5"}, missing: []string{"reps"}},
		{name: "whitespace is present", fields: Fields{Weight: " ", Reps: "5", Sets: "5"}},
		{name: "all empty", fields: Fields{}, missing: []string{"weight", "reps", "sets"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if len(tt.missing) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if len(verr.Missing) != len(tt.missing) {
				t.Fatalf("expected missing %v, got %v", tt.missing, verr.Missing)
			}
			for i := range tt.missing {
				if verr.Missing[i] != tt.missing[i] {
					t.Fatalf("expected missing %v, got %v", tt.missing, verr.Missing)
				}
			}
		})
	}
}

func TestSummary(t *testing.T) {
	e := &Entry{Name: "Squat", Weight: "105", Reps: "5", Sets: "5"}
	if got := e.Summary(); got != "105 x 5 x 5" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := e.String(); got != "Squat  105 x 5 x 5" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestValueDecodesStringsAndNumbers(t *testing.T) {
	var f Fields
	if err := json.Unmarshal([]byte(`{"name":"Squat","weight":102.5,"reps":5,"sets":"3"}`), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Weight != "102.5" || f.Reps != "5" || f.Sets != "3" {
		t.Fatalf("unexpected fields %#v", f)
	}
	if err := json.Unmarshal([]byte(`{"weight":9007199254740993,"reps":1e2,"sets":"5"}`), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Weight != "9007199254740993" || f.Reps != "100" {
		t.Fatalf("unexpected large or exponent values %#v", f)
	}
	if err := json.Unmarshal([]byte(`{"weight":true}`), &f); err == nil {
		t.Fatalf("expected error for boolean value")
	}
}

func TestApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	e := &Entry{ID: "abc", Index: 3, Created: Timestamp{Time: created}, Name: "Squat", Weight: "100", Reps: "5", Sets: "5"}
	e.Apply(Fields{Name: "Front squat", Weight: "80", Reps: "3", Sets: "4"})
	if e.ID != "abc" || e.Index != 3 || !e.Created.Equal(created) {
		t.Fatalf("identity changed: %#v", e)
	}
	if e.Name != "Front squat" || e.Summary() != "80 x 3 x 4" {
		t.Fatalf("fields not applied: %#v", e)
	}
}

func TestTimestampRoundTripsEmpty(t *testing.T) {
	var e Entry
	if err := json.Unmarshal([]byte(`{"id":"x","created":""}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !e.Created.IsZero() {
		t.Fatalf("expected zero timestamp, got %v", e.Created)
	}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Entry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if back.ID != "x" {
		t.Fatalf("unexpected id %q", back.ID)
	}
}
