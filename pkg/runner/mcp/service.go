// Package mcp provides the Model Context Protocol server integration for liftlog.
package mcp

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/liftlog/pkg/app"
	"tableflip.dev/liftlog/pkg/entry"
	"tableflip.dev/liftlog/pkg/store"
)

// Service adapts app.Service into transport-friendly projections for MCP.
type Service struct {
	App *app.Service
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID      string `json:"id"`
	Day     string `json:"day"`
	Name    string `json:"name,omitempty"`
	Weight  string `json:"weight"`
	Reps    string `json:"reps"`
	Sets    string `json:"sets"`
	Summary string `json:"summary"`
	Created string `json:"created"`
}

// DayDTO groups the entries of one day.
type DayDTO struct {
	Day     string     `json:"day"`
	Count   int        `json:"count"`
	Entries []EntryDTO `json:"entries"`
}

// EntryOptions carries the fields accepted by create_entry and update_entry.
type EntryOptions struct {
	Day    string
	ID     string
	Name   string
	Weight string
	Reps   string
	Sets   string
}

func (o EntryOptions) fields() entry.Fields {
	return entry.Fields{
		Name:   strings.TrimSpace(o.Name),
		Weight: entry.Value(strings.TrimSpace(o.Weight)),
		Reps:   entry.Value(strings.TrimSpace(o.Reps)),
		Sets:   entry.Value(strings.TrimSpace(o.Sets)),
	}
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{App: &app.Service{Persistence: p}}
}

// ListEntries returns the entries of a day in insertion order.
func (s *Service) ListEntries(ctx context.Context, day string) (DayDTO, error) {
	if err := s.ready(); err != nil {
		return DayDTO{}, err
	}
	entries, err := s.App.Entries(ctx, day)
	if err != nil {
		return DayDTO{}, err
	}
	out := DayDTO{Day: day, Count: len(entries), Entries: make([]EntryDTO, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, toDTO(day, e))
	}
	return out, nil
}

// ListDays returns every day holding at least one entry.
func (s *Service) ListDays(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	days, err := s.App.Days(ctx)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []string{}
	}
	return days, nil
}

// CreateEntry appends a new entry to a day.
func (s *Service) CreateEntry(ctx context.Context, opts EntryOptions) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	e, err := s.App.Add(ctx, opts.Day, opts.fields())
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(opts.Day, e), nil
}

// UpdateEntry replaces the editable fields of an existing entry.
func (s *Service) UpdateEntry(ctx context.Context, opts EntryOptions) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	if strings.TrimSpace(opts.ID) == "" {
		return EntryDTO{}, errors.New("entry id is required")
	}
	e, err := s.App.Update(ctx, opts.Day, opts.ID, opts.fields())
	if err != nil {
		return EntryDTO{}, err
	}
	return toDTO(opts.Day, e), nil
}

// DeleteEntry removes an entry from a day.
func (s *Service) DeleteEntry(ctx context.Context, day, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return errors.New("entry id is required")
	}
	return s.App.Delete(ctx, day, id)
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return app.ErrNoPersistence
	}
	return nil
}

func toDTO(day string, e *entry.Entry) EntryDTO {
	return EntryDTO{
		ID:      e.ID,
		Day:     day,
		Name:    e.Name,
		Weight:  e.Weight.String(),
		Reps:    e.Reps.String(),
		Sets:    e.Sets.String(),
		Summary: e.Summary(),
		Created: e.Created.String(),
	}
}
