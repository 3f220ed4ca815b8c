package discovery

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/nufluxx/spinbox/internal/domain/playlist"
	"github.com/nufluxx/spinbox/internal/domain/track"
	"github.com/nufluxx/spinbox/internal/infra/metrics"
)

// fallbackTrack is returned if every source somehow fails. With a demo
// source at the end of the chain this path is unreachable, but the
// non-empty playlist invariant must hold regardless of configuration.
var fallbackTrack = track.Track{Title: "Demo Track", URL: "assets/music/demo.mp3"}

// Chain tries sources in order until one yields a non-empty track list.
type Chain struct {
	sources []Source
}

// NewChain creates a new source chain.
func NewChain(sources []Source) *Chain {
	return &Chain{sources: sources}
}

// Sources returns the sources in the chain.
func (c *Chain) Sources() []Source {
	return c.sources
}

// Resolve runs the fallback chain and returns the session playlist.
// First source to yield tracks wins. Resolve never fails and never
// returns an empty playlist; source failures are diagnostics only.
func (c *Chain) Resolve(ctx context.Context, env Environment) *playlist.Playlist {
	if !env.Networked {
		zlog.Warn().Msg("discovery: local-file context detected; manifest fetch and probing need the media to be served over http (run a local server)")
	}

	for i, s := range c.sources {
		zlog.Debug().Msgf("discovery: trying source: index=%d total=%d name=%s", i+1, len(c.sources), s.Name())

		tracks, err := s.Discover(ctx, env)
		if err != nil {
			metrics.DiscoverySourceFailuresTotal.WithLabelValues(s.Name()).Inc()
			if errors.Is(err, ErrNotNetworked) {
				zlog.Debug().Msgf("discovery: source skipped in local context: source=%s", s.Name())
			} else {
				zlog.Warn().Msgf("discovery: source failed, trying next: source=%s error=%v", s.Name(), err)
			}
			continue
		}
		if len(tracks) == 0 {
			zlog.Debug().Msgf("discovery: source returned no tracks: source=%s", s.Name())
			continue
		}

		metrics.DiscoveryResolutionsTotal.WithLabelValues(s.Name()).Inc()
		zlog.Info().Msgf("discovery: playlist resolved: source=%s tracks=%d", s.Name(), len(tracks))
		return playlist.New(tracks)
	}

	metrics.DiscoveryResolutionsTotal.WithLabelValues("fallback").Inc()
	zlog.Error().Msg("discovery: all sources failed; falling back to the built-in demo track")
	return playlist.New([]track.Track{fallbackTrack})
}
