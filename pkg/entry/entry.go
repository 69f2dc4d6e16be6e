package entry

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Entry is one logged exercise record. Entries belong to exactly one day; the
// day is part of the storage key and never part of the record itself.
type Entry struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Weight  Value     `json:"weight"`
	Reps    Value     `json:"reps"`
	Sets    Value     `json:"sets"`
	Index   int       `json:"index"`
	Created Timestamp `json:"created"`
}

// Fields is the user-editable part of an entry.
type Fields struct {
	Name   string `json:"name"`
	Weight Value  `json:"weight"`
	Reps   Value  `json:"reps"`
	Sets   Value  `json:"sets"`
}

// ValidationError reports a client-side presence check failure.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry: missing %s", strings.Join(e.Missing, ", "))
}

// ErrMissingFields matches any *ValidationError via errors.Is.
var ErrMissingFields = errors.New("entry: weight, reps and sets are required")

func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingFields
}

// New builds an entry from fields. The caller assigns ID and Index.
func New(f Fields) *Entry {
	return &Entry{
		Name:    f.Name,
		Weight:  f.Weight,
		Reps:    f.Reps,
		Sets:    f.Sets,
		Created: Timestamp{Time: time.Now()},
	}
}

// Validate checks that weight, reps and sets are present. Name may be empty.
func (f Fields) Validate() error {
	var missing []string
	if f.Weight.Empty() {
		missing = append(missing, "weight")
	}
	if f.Reps.Empty() {
		missing = append(missing, "reps")
	}
	if f.Sets.Empty() {
		missing = append(missing, "sets")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Fields returns the editable part of the entry.
func (e *Entry) Fields() Fields {
	return Fields{Name: e.Name, Weight: e.Weight, Reps: e.Reps, Sets: e.Sets}
}

// Apply overwrites the editable part, keeping identity, order and creation time.
func (e *Entry) Apply(f Fields) {
	e.Name = f.Name
	e.Weight = f.Weight
	e.Reps = f.Reps
	e.Sets = f.Sets
}

// Summary renders "weight x reps x sets".
func (e *Entry) Summary() string {
	return fmt.Sprintf("%s x %s x %s", e.Weight, e.Reps, e.Sets)
}

func (e *Entry) String() string {
	if e.Name == "" {
		return e.Summary()
	}
	return fmt.Sprintf("%s  %s", e.Name, e.Summary())
}

// Value is a numeric-as-text field. It is kept as typed by the user and
// decodes from either a JSON string or a JSON number.
type Value string

func (v Value) String() string {
	return string(v)
}

// Empty reports whether the value is missing. Whitespace counts as present;
// front ends trim their inputs before building Fields.
func (v Value) Empty() bool {
	return v == ""
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("entry: value must be a string or number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*v = Value(strconv.FormatInt(i, 10))
		return nil
	}
	if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		*v = Value(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*v = Value(n.String())
	return nil
}
