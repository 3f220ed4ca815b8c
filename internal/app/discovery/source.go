// Package discovery resolves the session playlist through an ordered
// fallback chain of track sources.
package discovery

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nufluxx/spinbox/internal/domain/track"
)

// Environment describes the deployment context discovery runs in.
// Manifest fetching and filename probing are only possible when the
// media is served over a network protocol.
type Environment struct {
	Networked bool
	BaseURL   string
}

// EnvironmentFromBaseURL classifies a base URL. http/https URLs are
// networked; anything else (file paths, file:// URLs, empty) is a
// local-filesystem context where discovery requests are unavailable.
func EnvironmentFromBaseURL(raw string) Environment {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Environment{BaseURL: raw}
	}
	switch u.Scheme {
	case "http", "https":
		return Environment{Networked: true, BaseURL: raw}
	default:
		return Environment{BaseURL: raw}
	}
}

// ErrNotNetworked is returned by sources that need network requests
// when running in a local-filesystem context.
var ErrNotNetworked = errors.New("discovery requires a networked context")

// Source is the interface for playlist track sources. Different
// implementations discover tracks through different strategies
// (manifest file, filename probing, fixed fallback).
type Source interface {
	// Discover retrieves the tracks this source can find. Returning an
	// error or an empty list makes the chain move to the next source.
	Discover(ctx context.Context, env Environment) ([]track.Track, error)

	// Name returns the source name (used in config and diagnostics).
	Name() string
}
