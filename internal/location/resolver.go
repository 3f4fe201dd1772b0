package location

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-cli/internal/geo"
)

// Resolver walks an ordered list of sources and returns the first complete
// coordinate pair. A source that supplies exactly one axis aborts the walk
// with an IncompleteLocationError naming that source.
type Resolver struct {
	sources []Source
	log     *logrus.Logger
}

// NewResolver creates a Resolver over the given sources, consulted in order.
func NewResolver(log *logrus.Logger, sources ...Source) *Resolver {
	return &Resolver{sources: sources, log: log}
}

// Resolve runs the cascade once. Sources after the first usable one are
// never consulted.
func (r *Resolver) Resolve(ctx context.Context) (geo.Coordinate, error) {
	for _, src := range r.sources {
		cand, err := src.Lookup(ctx)
		if err != nil {
			return geo.Coordinate{}, err
		}
		if cand.Empty() {
			r.log.Debugf("no location from %s, trying next source", src.Name())
			continue
		}
		if !cand.Complete() {
			return geo.Coordinate{}, &IncompleteLocationError{Source: src.Name()}
		}
		coord := geo.Coordinate{Latitude: *cand.Latitude, Longitude: *cand.Longitude}
		if err := coord.Validate(); err != nil {
			return geo.Coordinate{}, fmt.Errorf("location from %s out of range: %w", src.Name(), err)
		}
		r.log.Debugf("location resolved by %s: %.4f,%.4f", src.Name(), coord.Latitude, coord.Longitude)
		return coord, nil
	}
	return geo.Coordinate{}, ErrNoLocation
}
