package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/omarshaarawi/powerboard/internal/config"
	"github.com/omarshaarawi/powerboard/internal/models"
)

// DefaultMaxBodyBytes caps how much of a snapshot response is read. Real
// snapshots are a few kilobytes.
const DefaultMaxBodyBytes = 8 << 20

type Client struct {
	httpClient   *http.Client
	Config       config.Snapshot
	MaxBodyBytes int64
}

// NewClient builds a client for the configured snapshot URL. A zero timeout
// leaves the transport default in place.
func NewClient(cfg config.Snapshot) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		Config:       cfg,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// NewClientWithHTTP is used when the caller owns the transport (tests, proxies).
func NewClientWithHTTP(cfg config.Snapshot, httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient, Config: cfg, MaxBodyBytes: DefaultMaxBodyBytes}
}

// Fetch downloads and decodes the snapshot with caching disabled.
func (c *Client) Fetch(ctx context.Context) (*models.LeagueSnapshot, error) {
	location := c.Config.URL
	if err := checkOrigin(location); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &FetchError{URL: location, Err: fmt.Errorf("error creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: location, Err: fmt.Errorf("error making request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: location, Status: resp.StatusCode}
	}

	// Read one byte past the cap to tell a full-size body from an oversized one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.MaxBodyBytes+1))
	if err != nil {
		return nil, &FetchError{URL: location, Err: fmt.Errorf("error reading body: %w", err)}
	}
	if int64(len(body)) > c.MaxBodyBytes {
		return nil, &ParseError{URL: location, Err: fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, c.MaxBodyBytes)}
	}

	snapshot, err := models.DecodeSnapshot(body)
	if err != nil {
		return nil, &ParseError{URL: location, Err: err}
	}
	return &snapshot, nil
}

func checkOrigin(location string) error {
	u, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return &FetchError{URL: location, Err: fmt.Errorf("invalid snapshot url: %w", err)}
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return &OriginRestriction{URL: location}
	}
}
