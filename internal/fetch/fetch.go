// Package fetch retrieves page markup for harvesting.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds one page retrieval.
	DefaultTimeout = 18 * time.Second

	// DefaultUserAgent identifies the harvester to remote sites.
	DefaultUserAgent = "promoforge-bot/1.0 (+https://example.local/)"

	// maxBodySize caps how much markup is read per page.
	maxBodySize = 4 << 20
)

// Client fetches pages with a fixed User-Agent and timeout.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a fetch client. Zero timeout and empty userAgent fall
// back to the package defaults.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get retrieves the page at url and returns its markup. Non-2xx
// responses are errors.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("fetch %s: read body: %w", url, err)
	}
	return string(body), nil
}
