// Package startgg fetches the venue's tournaments from the start.gg GraphQL
// API. A mock mode serves a fixed weekly schedule for local development.
package startgg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/becsite/backend/internal/model"
)

// DefaultEndpoint is the start.gg GraphQL endpoint.
const DefaultEndpoint = "https://api.start.gg/gql/alpha"

// PerPage is the page size requested for an owner's tournaments.
const PerPage = 25

// Mode selects where tournaments come from.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// ParseMode maps a config value to a Mode. Anything but "live" is mock.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeLive)) {
		return ModeLive
	}
	return ModeMock
}

var (
	// ErrNotConfigured is returned in live mode when the owner ID or API
	// token is missing.
	ErrNotConfigured = errors.New("startgg: not configured")
	// ErrNotFound is returned when no tournament matches a slug.
	ErrNotFound = errors.New("startgg: tournament not found")
)

// APIError is a non-2xx response or a GraphQL error list from start.gg.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return "startgg: GraphQL errors: " + strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("startgg: request failed with status %d", e.StatusCode)
}

// Config is the subset of application config the client needs.
type Config struct {
	Mode    Mode
	OwnerID string
	Token   string
}

// Client talks to start.gg, or serves mock data in ModeMock.
type Client struct {
	mode       Mode
	ownerID    string
	token      string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
	loc        *time.Location
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint.
func WithEndpoint(u string) Option { return func(c *Client) { c.endpoint = u } }

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// WithRateLimit replaces the outbound request throttle.
func WithRateLimit(l *rate.Limiter) Option { return func(c *Client) { c.limiter = l } }

// WithClock sets the reference time for mock schedules.
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

// WithLocation sets the zone mock schedules are laid out in.
func WithLocation(loc *time.Location) Option { return func(c *Client) { c.loc = loc } }

// New creates a Client. start.gg allows 80 requests per minute per token;
// the default throttle stays under that.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		mode:       cfg.Mode,
		ownerID:    strings.TrimSpace(cfg.OwnerID),
		token:      strings.TrimSpace(cfg.Token),
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/80), 5),
		now:        time.Now,
		loc:        time.Local,
	}
	if c.mode != ModeLive {
		c.mode = ModeMock
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mode reports the mode resolved at construction.
func (c *Client) Mode() Mode { return c.mode }

// FetchAll returns the owner's tournaments, or the mock schedule.
func (c *Client) FetchAll(ctx context.Context) ([]model.Tournament, error) {
	if c.mode == ModeMock {
		return MockTournaments(c.now(), c.loc), nil
	}
	if c.ownerID == "" {
		return nil, fmt.Errorf("%w: STARTGG_OWNER_ID is required in live mode", ErrNotConfigured)
	}

	var data struct {
		Tournaments *struct {
			Nodes []tournamentNode `json:"nodes"`
		} `json:"tournaments"`
	}
	vars := map[string]any{"ownerId": c.ownerID, "perPage": PerPage}
	if err := c.query(ctx, tournamentsByOwnerQuery, vars, &data); err != nil {
		return nil, err
	}

	out := []model.Tournament{}
	if data.Tournaments == nil {
		return out, nil
	}
	for _, n := range data.Tournaments.Nodes {
		out = append(out, n.toModel())
	}
	return out, nil
}

// FetchBySlug returns one tournament, or ErrNotFound.
func (c *Client) FetchBySlug(ctx context.Context, slug string) (*model.Tournament, error) {
	if c.mode == ModeMock {
		for _, t := range MockTournaments(c.now(), c.loc) {
			if t.Slug == slug {
				return &t, nil
			}
		}
		return nil, ErrNotFound
	}

	var data struct {
		Tournament *tournamentNode `json:"tournament"`
	}
	if err := c.query(ctx, tournamentBySlugQuery, map[string]any{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.Tournament == nil {
		return nil, ErrNotFound
	}
	t := data.Tournament.toModel()
	return &t, nil
}

func (c *Client) query(ctx context.Context, query string, vars map[string]any, dst any) error {
	if c.token == "" {
		return fmt.Errorf("%w: STARTGG_API_TOKEN is required in live mode", ErrNotConfigured)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("startgg: throttle: %w", err)
		}
	}

	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("startgg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("startgg: decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return &APIError{StatusCode: resp.StatusCode, Messages: msgs}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		return fmt.Errorf("startgg: decode data: %w", err)
	}
	return nil
}
