// Package probe provides lightweight existence checks for media URLs.
package probe

import (
	"context"
	"net/http"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"
)

// Client performs existence-check requests without fetching bodies.
type Client struct {
	httpClient *http.Client
}

// New creates a new probe client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Exists reports whether the resource at path (relative to baseURL)
// exists, using a HEAD request. A request error or non-success status
// counts as absent; individual failures are logged at debug level only.
func (c *Client) Exists(ctx context.Context, baseURL, path string) bool {
	reqURL := joinURL(baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, reqURL, nil)
	if err != nil {
		zlog.Debug().Msgf("probe: failed to create request: url=%s error=%v", reqURL, err)
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		zlog.Debug().Msgf("probe: request failed: url=%s error=%v", reqURL, err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// joinURL joins a base URL and a relative path with a single slash.
func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
