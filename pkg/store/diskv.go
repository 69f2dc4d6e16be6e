package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/liftlog/pkg/config"
	"tableflip.dev/liftlog/pkg/entry"
)

var (
	// ErrNotFound is returned when no entry exists for a (day, id) pair.
	ErrNotFound = errors.New("store: entry not found")
	// ErrInvalidKey is returned for days or ids that cannot name a file.
	ErrInvalidKey = errors.New("store: invalid key")
)

// Persistence defines the persistence contract for day entries.
type Persistence interface {
	List(ctx context.Context, day string) ([]*entry.Entry, error)
	Get(ctx context.Context, day, id string) (*entry.Entry, error)
	Store(day string, e *entry.Entry) error
	Delete(day, id string) error
	Days(ctx context.Context) ([]string, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg config.Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := entry.Entry{}
	if err := json.Unmarshal(val, &e); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	pk := keyToPathTransform(key)
	e.ID = pk.FileName
	return &e, nil
}

func (p *persistence) List(ctx context.Context, day string) ([]*entry.Entry, error) {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 || pk.Path[0] != day {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			return nil, err
		}
		all = append(all, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortEntries(all)
	return all, nil
}

func (p *persistence) Get(_ context.Context, day, id string) (*entry.Entry, error) {
	key, err := toKey(day, id)
	if err != nil {
		return nil, err
	}
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	return p.read(key)
}

func (p *persistence) Store(day string, e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	key, err := toKey(day, e.ID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) Delete(day, id string) error {
	key, err := toKey(day, id)
	if err != nil {
		return err
	}
	if !p.d.Has(key) {
		return ErrNotFound
	}
	return p.d.Erase(key)
}

func (p *persistence) Days(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 {
			continue
		}
		seen[pk.Path[0]] = struct{}{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	return days, nil
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Index != entries[j].Index {
			return entries[i].Index < entries[j].Index
		}
		return entries[i].ID < entries[j].ID
	})
}

const keySeparator = "/"

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySeparator)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), keySeparator)
}

// toKey makes `day/id`. Both halves become path elements, so neither may
// contain a separator or be a relative path.
func toKey(day, id string) (string, error) {
	if !safeElement(day) {
		return "", fmt.Errorf("%w: day %q", ErrInvalidKey, day)
	}
	if !safeElement(id) {
		return "", fmt.Errorf("%w: id %q", ErrInvalidKey, id)
	}
	return day + keySeparator + id, nil
}

func safeElement(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.HasPrefix(s, ".")
}
