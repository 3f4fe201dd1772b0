package geo

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distance.
const EarthRadiusMeters = 6371000.0

var validate = validator.New()

// Coordinate is a latitude/longitude pair in decimal degrees. Once resolved
// for a run it is never mutated.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Validate checks that both axes are within their valid ranges.
func (c Coordinate) Validate() error {
	return validate.Struct(c)
}

// Distance returns the great-circle distance between a and b in meters using
// the haversine formula on a spherical Earth. Identical coordinates yield an
// exact zero.
func Distance(a, b Coordinate) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dlat := radians(b.Latitude - a.Latitude)
	dlon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)

	// Rounding can push h a hair past 1 for near-antipodal points, which
	// would turn Asin(Sqrt(h)) into NaN.
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
