package discovery

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/nufluxx/spinbox/internal/domain/track"
)

// DemoSourceConfig holds demo source settings.
type DemoSourceConfig struct {
	Title string `yaml:"title" mapstructure:"title" default:"Demo Track" validate:"required"`
	URL   string `yaml:"url" mapstructure:"url" default:"assets/music/demo.mp3" validate:"required"`
}

// DemoSource is the terminal fallback: it always succeeds with a
// single fixed demo track, which is what guarantees a resolved
// playlist is never empty.
type DemoSource struct {
	config *DemoSourceConfig
}

// NewDemoSource creates a new DemoSource.
func NewDemoSource(settings map[string]any) (*DemoSource, error) {
	var config DemoSourceConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	return &DemoSource{config: &config}, nil
}

// Discover returns the single-element demo track list. Works in any
// context and never fails.
func (s *DemoSource) Discover(ctx context.Context, env Environment) ([]track.Track, error) {
	return []track.Track{
		{Title: s.config.Title, URL: s.config.URL},
	}, nil
}

// Name returns the source name.
func (s *DemoSource) Name() string {
	return "demo"
}
