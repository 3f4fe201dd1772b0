package location

import (
	"context"

	"github.com/i474232898/weather-cli/internal/config"
)

// ConfigSource reads coordinates from the weather.conf file when one exists.
// An absent file means the source has nothing to offer; an existing file that
// cannot be read or parsed is a hard error.
type ConfigSource struct {
	locate func() (string, bool)
	parse  func(path string) (*config.File, error)
}

// NewConfigSource creates a ConfigSource over the standard config discovery.
func NewConfigSource() *ConfigSource {
	return &ConfigSource{
		locate: config.Locate,
		parse:  config.ParseFile,
	}
}

func (*ConfigSource) Name() string { return "configuration file" }

func (s *ConfigSource) Lookup(context.Context) (Candidate, error) {
	path, ok := s.locate()
	if !ok {
		return Candidate{}, nil
	}
	cfg, err := s.parse(path)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Latitude: cfg.Latitude, Longitude: cfg.Longitude}, nil
}
