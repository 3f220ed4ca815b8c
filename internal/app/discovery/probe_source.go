package discovery

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/nufluxx/spinbox/internal/domain/track"
	"github.com/nufluxx/spinbox/internal/infra/probe"
)

// ProbeClient defines the existence-check operation needed by discovery.
type ProbeClient interface {
	Exists(ctx context.Context, baseURL, path string) bool
}

// ProbeSourceConfig holds probe source settings. The default pattern
// and count match the conventional assets/music/track{1..30}.mp3
// layout; the count is configurable without changing the default.
type ProbeSourceConfig struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern" default:"assets/music/track%d.mp3" validate:"required"`
	Count   int    `yaml:"count" mapstructure:"count" default:"30" validate:"gte=1,lte=500"`
}

// ProbeSource discovers tracks by existence-checking a fixed range of
// conventional filenames in ascending numeric order.
type ProbeSource struct {
	client ProbeClient
	config *ProbeSourceConfig
}

// NewProbeSource creates a new ProbeSource.
func NewProbeSource(client ProbeClient, settings map[string]any) (*ProbeSource, error) {
	if client == nil {
		client = probe.New()
	}

	var config ProbeSourceConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	return &ProbeSource{client: client, config: &config}, nil
}

// Discover probes each candidate filename and collects the ones that
// exist. Failed individual probes are silently excluded; zero hits is
// a source failure.
func (s *ProbeSource) Discover(ctx context.Context, env Environment) ([]track.Track, error) {
	if !env.Networked {
		return nil, ErrNotNetworked
	}

	var tracks []track.Track
	for n := 1; n <= s.config.Count; n++ {
		path := fmt.Sprintf(s.config.Pattern, n)
		if !s.client.Exists(ctx, env.BaseURL, path) {
			continue
		}
		tracks = append(tracks, track.Track{
			Title:       fmt.Sprintf("Track %d", n),
			URL:         path,
			TrackNumber: n,
		})
	}

	if len(tracks) == 0 {
		return nil, errors.Newf("no tracks found probing %d candidates", s.config.Count)
	}

	zlog.Debug().Msgf("discovery: probe found tracks: count=%d of=%d", len(tracks), s.config.Count)
	return tracks, nil
}

// Name returns the source name.
func (s *ProbeSource) Name() string {
	return "probe"
}
