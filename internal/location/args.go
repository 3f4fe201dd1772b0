package location

import "context"

// ArgsSource carries coordinates supplied directly on the command line. It
// sits first in the cascade.
type ArgsSource struct {
	Latitude  *float64
	Longitude *float64
}

func (ArgsSource) Name() string { return "command line arguments" }

func (s ArgsSource) Lookup(context.Context) (Candidate, error) {
	return Candidate{Latitude: s.Latitude, Longitude: s.Longitude}, nil
}
