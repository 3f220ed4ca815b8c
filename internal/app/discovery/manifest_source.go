package discovery

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/nufluxx/spinbox/internal/domain/track"
	"github.com/nufluxx/spinbox/internal/infra/manifest"
)

// ManifestClient defines the manifest operations needed by discovery.
type ManifestClient interface {
	Fetch(ctx context.Context, baseURL, path string) ([]track.Track, error)
}

// ManifestSourceConfig holds manifest source settings.
type ManifestSourceConfig struct {
	Path string `yaml:"path" mapstructure:"path" default:"assets/music/playlist.json" validate:"required"`
}

// ManifestSource discovers tracks by fetching a JSON manifest from a
// well-known path relative to the base URL.
type ManifestSource struct {
	client ManifestClient
	config *ManifestSourceConfig
}

// NewManifestSource creates a new ManifestSource.
func NewManifestSource(client ManifestClient, settings map[string]any) (*ManifestSource, error) {
	if client == nil {
		client = manifest.New()
	}

	var config ManifestSourceConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	return &ManifestSource{client: client, config: &config}, nil
}

// Discover fetches and normalizes the manifest. Only possible in a
// networked context.
func (s *ManifestSource) Discover(ctx context.Context, env Environment) ([]track.Track, error) {
	if !env.Networked {
		return nil, ErrNotNetworked
	}
	return s.client.Fetch(ctx, env.BaseURL, s.config.Path)
}

// Name returns the source name.
func (s *ManifestSource) Name() string {
	return "manifest"
}
