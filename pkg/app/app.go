package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tableflip.dev/liftlog/pkg/entry"
	"tableflip.dev/liftlog/pkg/store"
	"tableflip.dev/liftlog/pkg/timeutil"
)

// Service provides the day-scoped entry operations behind the HTTP API and
// the MCP server.
type Service struct {
	Persistence store.Persistence

	// NewID overrides id generation; nil means random UUIDs.
	NewID func() string
}

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrNotFound      = errors.New("app: entry not found")
	ErrInvalidDay    = errors.New("app: day must be YYYY-MM-DD")
)

// Entries lists the entries of a day in insertion order.
func (s *Service) Entries(ctx context.Context, day string) ([]*entry.Entry, error) {
	if err := s.check(day); err != nil {
		return nil, err
	}
	return s.Persistence.List(ctx, day)
}

// Days lists every day that has at least one entry.
func (s *Service) Days(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Days(ctx)
}

// Add creates and stores a new entry at the end of the day.
func (s *Service) Add(ctx context.Context, day string, f entry.Fields) (*entry.Entry, error) {
	if err := s.check(day); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.Persistence.List(ctx, day)
	if err != nil {
		return nil, err
	}
	next := 0
	for _, e := range existing {
		if e.Index >= next {
			next = e.Index + 1
		}
	}
	e := entry.New(f)
	e.ID = s.newID()
	e.Index = next
	if err := s.Persistence.Store(day, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the editable fields of an entry, keeping its id, position
// and creation time.
func (s *Service) Update(ctx context.Context, day, id string, f entry.Fields) (*entry.Entry, error) {
	if err := s.check(day); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	e, err := s.get(ctx, day, id)
	if err != nil {
		return nil, err
	}
	e.Apply(f)
	if err := s.Persistence.Store(day, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an entry permanently.
func (s *Service) Delete(ctx context.Context, day, id string) error {
	if err := s.check(day); err != nil {
		return err
	}
	if _, err := s.get(ctx, day, id); err != nil {
		return err
	}
	if err := s.Persistence.Delete(day, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) get(ctx context.Context, day, id string) (*entry.Entry, error) {
	e, err := s.Persistence.Get(ctx, day, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("app: get %s/%s: %w", day, id, err)
	}
	return e, nil
}

func (s *Service) check(day string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if !timeutil.ValidDay(day) {
		return ErrInvalidDay
	}
	return nil
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
