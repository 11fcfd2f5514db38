package draw

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// MaxLatitude is the Web Mercator latitude limit.
const MaxLatitude = 85.05112878

// ToGeographic converts an EPSG:3857 point to [lon, lat].
func ToGeographic(p orb.Point) orb.Point {
	return project.Mercator.ToWGS84(p)
}

// FromGeographic converts [lon, lat] to EPSG:3857 meters.
func FromGeographic(p orb.Point) orb.Point {
	return project.WGS84.ToMercator(p)
}

func toGeographic(pts []orb.Point) []orb.Point {
	out := make([]orb.Point, len(pts))
	for i, p := range pts {
		out[i] = ToGeographic(p)
	}
	return out
}
