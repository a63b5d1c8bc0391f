// Package fetch downloads raw file content for scan candidates.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxFileSize caps the number of bytes read from a single file.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Config for a Client.
type Config struct {
	// HTTPClient performs the requests; nil selects http.DefaultClient.
	// No timeout is applied beyond what the client itself enforces.
	HTTPClient *http.Client

	// MaxFileSize is the maximum number of bytes read (0 = DefaultMaxFileSize).
	MaxFileSize int64

	// UserAgent is sent with every request when set.
	UserAgent string
}

// Client fetches raw content over plain HTTP GET.
type Client struct {
	http        *http.Client
	maxFileSize int64
	userAgent   string
}

// New creates a Client.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	return &Client{
		http:        cfg.HTTPClient,
		maxFileSize: cfg.MaxFileSize,
		userAgent:   cfg.UserAgent,
	}
}

// Fetch returns the body of rawURL as text. Non-2xx responses are errors.
// Bodies longer than MaxFileSize are truncated.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxFileSize))
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	return string(body), nil
}
