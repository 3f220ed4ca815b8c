// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Player    PlayerConfig    `yaml:"player"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig represents the control-surface server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr" default:":8080"`
}

// PlayerConfig represents playback configuration.
type PlayerConfig struct {
	Volume             float64 `yaml:"volume" default:"1.0" validate:"gte=0,lte=1"`
	DefaultDurationSec float64 `yaml:"default_duration_sec" default:"180" validate:"gt=0"`
	TickMs             int     `yaml:"tick_ms" default:"200" validate:"gte=10,lte=5000"`
}

// DiscoveryConfig represents playlist discovery configuration.
type DiscoveryConfig struct {
	BaseURL string         `yaml:"base_url"`
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig represents a single discovery source configuration.
type SourceConfig struct {
	Type     string         `yaml:"type" validate:"required"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" default:"info"`
	Output string `yaml:"output" default:"stdout"`
}

// Load loads configuration from a YAML file. A missing file is not an
// error: the player runs fine on defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Default discovery chain: manifest, then filename probing, then
	// the guaranteed demo fallback.
	if len(cfg.Discovery.Sources) == 0 {
		cfg.Discovery.Sources = []SourceConfig{
			{Type: "manifest"},
			{Type: "probe"},
			{Type: "demo"},
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SPINBOX_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SPINBOX_BASE_URL"); v != "" {
		c.Discovery.BaseURL = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
