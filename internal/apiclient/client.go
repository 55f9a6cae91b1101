// Package apiclient talks to the tracker REST API.
//
// List endpoints may answer with a bare JSON array or with an envelope object
// carrying the array under "results"; both shapes normalize to the same list.
// The client performs exactly one attempt per call.
package apiclient

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
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single request when no http.Client is supplied.
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 10 * 1024 * 1024 // 10 MiB
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used to trace requests at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

// New returns a client for the API rooted at baseURL, e.g. "http://localhost:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches a list resource and returns its records, accepting either a
// bare array or a {"results": [...]} envelope. An envelope without results
// yields an empty list.
func (c *Client) List(ctx context.Context, path string) ([]json.RawMessage, error) {
	body, u, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	items, err := normalizeList(body)
	if err != nil {
		return nil, &DecodeError{URL: u, Err: err}
	}
	c.logger.Debug("fetched list", zap.String("url", u), zap.Int("count", len(items)))
	return items, nil
}

func normalizeList(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty body")
	}

	switch body[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []json.RawMessage{}
		}
		return items, nil
	case '{':
		var envelope struct {
			Results []json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		if envelope.Results == nil {
			return []json.RawMessage{}, nil
		}
		return envelope.Results, nil
	default:
		return nil, fmt.Errorf("expected JSON array or object, got %q", truncate(string(body), 40))
	}
}

func listInto[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	items, err := c.List(ctx, path)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, &DecodeError{URL: c.baseURL + path, Err: fmt.Errorf("record %d: %w", i, err)}
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	return listInto[User](ctx, c, PathUsers)
}

func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	return listInto[Team](ctx, c, PathTeams)
}

func (c *Client) Activities(ctx context.Context) ([]Activity, error) {
	return listInto[Activity](ctx, c, PathActivities)
}

func (c *Client) Workouts(ctx context.Context) ([]Workout, error) {
	return listInto[Workout](ctx, c, PathWorkouts)
}

func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	return listInto[LeaderboardEntry](ctx, c, PathLeaderboard)
}

// UpdateUser replaces the writable fields of user id.
func (c *Client) UpdateUser(ctx context.Context, id string, update UserUpdate) (*User, error) {
	var user User
	if err := c.put(ctx, PathUsers+url.PathEscape(id)+"/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateTeam replaces the name and member list of team id.
func (c *Client) UpdateTeam(ctx context.Context, id string, update TeamUpdate) (*Team, error) {
	if update.Members == nil {
		update.Members = []string{}
	}
	var team Team
	if err := c.put(ctx, PathTeams+url.PathEscape(id)+"/", update, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	body, u, err := c.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{URL: u, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, string, error) {
	u := c.baseURL + path

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, u, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", zap.String("method", method), zap.String("url", u))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, u, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, u, fmt.Errorf("%s %s: reading response body: %w", method, u, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, u, &StatusError{
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(body)), 200),
		}
	}
	return body, u, nil
}

// truncate limits a string to maxLen runes, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
