// Package cache persists the single most recent weather observation and
// decides whether it may be reused for a freshly resolved location.
package cache

import (
	"encoding/json"

	"github.com/i474232898/weather-cli/internal/geo"
)

// Record is the cached weather observation. Payload is the provider response,
// passed through untouched; the core never interprets it. Records are only
// ever replaced wholesale, never partially updated.
type Record struct {
	Coordinate geo.Coordinate  `json:"coordinate"`
	ObservedAt int64           `json:"observed_at"`
	Payload    json.RawMessage `json:"payload"`
}
