package location

import (
	"context"

	"github.com/i474232898/weather-cli/internal/geo"
)

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (geo.Coordinate, error)
}

// CitySource resolves an explicitly requested city name. A geocoding failure
// is a hard error rather than fallthrough: the user named the target, and a
// lower-priority source would silently pick a different place.
type CitySource struct {
	City     string
	Geocoder Geocoder
}

func (CitySource) Name() string { return "city geocoding" }

func (s CitySource) Lookup(ctx context.Context) (Candidate, error) {
	if s.City == "" {
		return Candidate{}, nil
	}
	coord, err := s.Geocoder.Geocode(ctx, s.City)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Latitude: &coord.Latitude, Longitude: &coord.Longitude}, nil
}
