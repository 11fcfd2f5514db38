package mission

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the sphere radius used for route distances.
const EarthRadiusKm = 6378.0

// Distance returns the great-circle distance in kilometers between two
// [lon, lat] points using the haversine formula.
func Distance(a, b orb.Point) float64 {
	lat1, lat2 := toRad(a.Lat()), toRad(b.Lat())
	dLat := toRad(b.Lat() - a.Lat())
	dLon := toRad(b.Lon() - a.Lon())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding near antipodes can push h just above 1
	h = math.Min(h, 1)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
