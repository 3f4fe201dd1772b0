// Package location resolves the target coordinate for a run by walking an
// ordered cascade of sources: command line arguments, city geocoding,
// environment variables, the configuration file and finally the device GPS.
package location

import "context"

// Candidate is the raw pair of optional values a source read. A nil field
// means the source had nothing for that axis.
type Candidate struct {
	Latitude  *float64
	Longitude *float64
}

// Complete reports whether both axes are present.
func (c Candidate) Complete() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Empty reports whether neither axis is present.
func (c Candidate) Empty() bool {
	return c.Latitude == nil && c.Longitude == nil
}

// Source is one ordered origin of location data in the resolution cascade.
type Source interface {
	// Name identifies the source in user-facing errors.
	Name() string

	// Lookup reads the source's raw inputs. An empty Candidate with a nil
	// error means the source has nothing to offer and the cascade moves on.
	Lookup(ctx context.Context) (Candidate, error)
}
