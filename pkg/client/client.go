package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tableflip.dev/liftlog/pkg/entry"
)

// Client talks to the liftlog HTTP API.
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func New(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimSuffix(base, "/"),
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: server returned %d", e.Status)
	}
	return fmt.Sprintf("client: server returned %d: %s", e.Status, e.Message)
}

// Message returns the server supplied error text carried by err, or "" when
// there is none.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

type createRequest struct {
	Date string `json:"date"`
	entry.Fields
}

// List returns the entries of day in server order. A successful empty
// response yields an empty, non-nil slice.
func (c *Client) List(ctx context.Context, day string) ([]*entry.Entry, error) {
	q := url.Values{"date": {day}}
	var out []*entry.Entry
	if err := c.do(ctx, http.MethodGet, "/api/entries?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*entry.Entry{}
	}
	return out, nil
}

// Create adds an entry to day. Any 2xx is success; the returned entry is nil
// when the server sends no usable body.
func (c *Client) Create(ctx context.Context, day string, f entry.Fields) (*entry.Entry, error) {
	out := &optionalEntry{}
	if err := c.do(ctx, http.MethodPost, "/api/entries", createRequest{Date: day, Fields: f}, out); err != nil {
		return nil, err
	}
	return out.entry, nil
}

// Update replaces the fields of id on day. Like Create, the body of a 2xx
// response is optional.
func (c *Client) Update(ctx context.Context, day, id string, f entry.Fields) (*entry.Entry, error) {
	out := &optionalEntry{}
	if err := c.do(ctx, http.MethodPut, entryPath(day, id), f, out); err != nil {
		return nil, err
	}
	return out.entry, nil
}

func (c *Client) Delete(ctx context.Context, day, id string) error {
	return c.do(ctx, http.MethodDelete, entryPath(day, id), nil, nil)
}

// Days lists the days that have entries.
func (c *Client) Days(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/days", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func entryPath(day, id string) string {
	return "/api/entries/" + url.PathEscape(day) + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read %s %s: %w", method, path, err)
	}
	if o, ok := out.(*optionalEntry); ok {
		o.accept(b)
		return nil
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

// optionalEntry holds a success body that may be empty or not an entry.
type optionalEntry struct {
	entry *entry.Entry
}

func (o *optionalEntry) accept(b []byte) {
	var e entry.Entry
	if json.Unmarshal(b, &e) == nil && e.ID != "" {
		o.entry = &e
	}
}

func decodeError(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err == nil {
		e.Message = payload.Error
	}
	return e
}
