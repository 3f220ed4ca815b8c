// Package manifest provides a client for fetching playlist manifests.
//
// A manifest is a JSON array of track objects served from a well-known
// path next to the media files. Unknown keys are ignored; a payload
// that is not a non-empty array is treated as an absent manifest.
package manifest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/nufluxx/spinbox/internal/domain/track"
)

// DefaultPath is the well-known manifest location relative to the base URL.
const DefaultPath = "assets/music/playlist.json"

// entry mirrors one manifest element. Track and Duration are kept raw
// so that non-numeric values degrade to "absent" instead of failing
// the whole manifest.
type entry struct {
	Title    string          `json:"title"`
	URL      string          `json:"url"`
	Artist   string          `json:"artist"`
	Album    string          `json:"album"`
	Track    json.RawMessage `json:"track"`
	Duration json.RawMessage `json:"duration"`
}

// Client fetches and normalizes playlist manifests.
type Client struct {
	httpClient *http.Client
}

// New creates a new manifest client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves the manifest at path relative to baseURL and returns
// the normalized track list. Any failure (unreachable, non-2xx,
// non-array, empty, or no usable entries) is returned as an error so
// the discovery chain can move on.
func (c *Client) Fetch(ctx context.Context, baseURL, path string) ([]track.Track, error) {
	reqURL := joinURL(baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch manifest")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("manifest request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest body")
	}

	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, errors.Wrap(err, "manifest is not a JSON array of tracks")
	}
	if len(entries) == 0 {
		return nil, errors.New("manifest is empty")
	}

	tracks := make([]track.Track, 0, len(entries))
	for i, e := range entries {
		if e.URL == "" {
			zlog.Debug().Msgf("manifest: skipping entry without url: index=%d", i)
			continue
		}

		t := track.Track{
			Title:  e.Title,
			URL:    e.URL,
			Artist: e.Artist,
			Album:  e.Album,
		}
		if t.Title == "" {
			t.Title = track.PrettifyName(e.URL)
		}
		if n, ok := numeric(e.Track); ok {
			t.TrackNumber = int(n)
		}
		if d, ok := numeric(e.Duration); ok {
			t.DurationSeconds = d
		}
		tracks = append(tracks, t)
	}

	if len(tracks) == 0 {
		return nil, errors.New("manifest has no usable entries")
	}

	return tracks, nil
}

// numeric decodes a raw JSON value as a number. Absent or non-numeric
// values report ok=false.
func numeric(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

// joinURL joins a base URL and a relative path with a single slash.
func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
