package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-cli/internal/geo"
)

type fakeGeocoder struct {
	coord geo.Coordinate
	err   error
}

func (f fakeGeocoder) Geocode(context.Context, string) (geo.Coordinate, error) {
	return f.coord, f.err
}

// TestCitySourceResolves verifies a geocoded city stops the cascade.
func TestCitySourceResolves(t *testing.T) {
	src := CitySource{City: "Denver", Geocoder: fakeGeocoder{coord: geo.Coordinate{Latitude: 39.7392, Longitude: -104.9847}}}
	next := &fakeSource{name: "next", cand: Candidate{Latitude: ptr(1), Longitude: ptr(1)}}

	coord, err := NewResolver(testLogger(), src, next).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, geo.Coordinate{Latitude: 39.7392, Longitude: -104.9847}, coord)
	assert.False(t, next.consulted)
}

// TestCitySourceEmptyCityFallsThrough verifies that no --city flag means the
// source has nothing to offer.
func TestCitySourceEmptyCityFallsThrough(t *testing.T) {
	cand, err := CitySource{Geocoder: fakeGeocoder{}}.Lookup(context.Background())
	require.NoError(t, err)
	assert.True(t, cand.Empty())
}

// TestCitySourceGeocodeFailure verifies that a failed lookup for an
// explicitly named city is a hard error, not fallthrough.
func TestCitySourceGeocodeFailure(t *testing.T) {
	boom := errors.New("city not found")
	src := CitySource{City: "Atlantis", Geocoder: fakeGeocoder{err: boom}}

	_, err := NewResolver(testLogger(), src, EnvSource{}).Resolve(context.Background())
	assert.ErrorIs(t, err, boom)
}
