package discovery

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/nufluxx/spinbox/internal/infra/config"
)

// NewChainFromConfig creates a source chain from configuration.
func NewChainFromConfig(cfg *config.Config) (*Chain, error) {
	if len(cfg.Discovery.Sources) == 0 {
		return nil, errors.New("no discovery sources configured")
	}

	var sources []Source

	for i, scfg := range cfg.Discovery.Sources {
		var source Source
		var err error
		zlog.Debug().Msgf("creating discovery source: index=%d type=%s settings=%+v", i+1, scfg.Type, scfg.Settings)
		switch scfg.Type {
		case "manifest":
			source, err = NewManifestSource(nil, scfg.Settings)

		case "probe":
			source, err = NewProbeSource(nil, scfg.Settings)

		case "demo":
			source, err = NewDemoSource(scfg.Settings)

		default:
			return nil, errors.Newf("unsupported source type: %s (source index %d)", scfg.Type, i)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed to create source (index %d, type %s)", i, scfg.Type)
		}

		sources = append(sources, source)
		zlog.Info().Msgf("registered discovery source: index=%d type=%s", i+1, scfg.Type)
	}

	return NewChain(sources), nil
}
