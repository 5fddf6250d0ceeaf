package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher retrieves the current feed status. *Client implements it; tests
// substitute their own.
type Fetcher interface {
	Fetch(ctx context.Context) (Status, error)
}

var _ Fetcher = (*Client)(nil)

// Client polls a JSON status endpoint.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "strut/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 64 * 1024
)

// NewClient builds a Client for the given endpoint. A bare host:port is
// treated as http.
func NewClient(endpoint string) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Endpoint returns the normalized endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Fetch retrieves the endpoint's current status.
func (c *Client) Fetch(ctx context.Context) (Status, error) {
	if c == nil {
		return Status{}, fmt.Errorf("client is nil")
	}
	var payload Status
	if err := c.do(ctx, http.MethodGet, &payload); err != nil {
		return Status{}, err
	}
	payload.Text = strings.TrimSpace(payload.Text)
	payload.Color = strings.TrimSpace(payload.Color)
	return payload, nil
}

func (c *Client) do(ctx context.Context, method string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("feed %s returned status %d", c.endpoint.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(http.MaxBytesReader(nil, resp.Body, maxBodyBytes))
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("feed url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse feed url %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("feed url %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("feed url %q has no host", endpoint)
	}
	u.Fragment = ""
	return u, nil
}
