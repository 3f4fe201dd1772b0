package location

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Environment variable names consulted by EnvSource.
const (
	EnvLatitude  = "LATITUDE"
	EnvLongitude = "LONGITUDE"
)

// EnvSource reads LATITUDE and LONGITUDE from the process environment.
type EnvSource struct{}

func (EnvSource) Name() string { return "environment variables" }

func (EnvSource) Lookup(context.Context) (Candidate, error) {
	lat, err := envFloat(EnvLatitude)
	if err != nil {
		return Candidate{}, err
	}
	lon, err := envFloat(EnvLongitude)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Latitude: lat, Longitude: lon}, nil
}

func envFloat(key string) (*float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q", key, raw)
	}
	return &v, nil
}
