package cache

import (
	"time"

	"github.com/i474232898/weather-cli/internal/geo"
)

// Policy bounds how far from the target and how old a cached record may be
// and still be served instead of a fresh fetch.
type Policy struct {
	// MaxRangeMeters is the inclusive distance bound. A negative value
	// disables the distance check entirely.
	MaxRangeMeters float64

	// MaxAgeSeconds is the exclusive age bound: a record exactly this old
	// is already stale.
	MaxAgeSeconds float64
}

// DefaultPolicy mirrors the shipped defaults: 1 km range, 5 minute age.
var DefaultPolicy = Policy{MaxRangeMeters: 1000, MaxAgeSeconds: 300}

// Valid reports whether rec may be reused for target under p at time now.
// A nil record is never valid.
func Valid(rec *Record, target geo.Coordinate, p Policy, now time.Time) bool {
	if rec == nil {
		return false
	}
	if p.MaxRangeMeters >= 0 && geo.Distance(rec.Coordinate, target) > p.MaxRangeMeters {
		return false
	}
	return float64(now.Unix()-rec.ObservedAt) < p.MaxAgeSeconds
}
