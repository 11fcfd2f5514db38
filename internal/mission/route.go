package mission

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// ErrIndexOutOfRange is returned when a polygon is anchored to a waypoint that does not exist.
var ErrIndexOutOfRange = errors.New("waypoint index out of range")

// Position selects which side of the anchor waypoint a polygon is spliced on.
type Position int

const (
	Before Position = iota
	After
)

func (p Position) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// Region is a polygon drawn for the mission. Vertices are kept as drawn;
// the last vertex implicitly connects back to the first.
type Region struct {
	Vertices orb.Ring
	Anchor   int
	Position Position
	// Detached is set once the line the region was anchored to is replaced;
	// Anchor then refers to the earlier route, not to Waypoints.
	Detached bool
}

// Leg is the distance from the previous waypoint. OK is false for the first waypoint.
type Leg struct {
	Km float64
	OK bool
}

// Route holds the ordered waypoints of a mission and the polygon regions inserted along it.
type Route struct {
	waypoints orb.LineString
	regions   []Region
}

func NewRoute() *Route { return &Route{} }

// SetLineWaypoints replaces the waypoint sequence with coords, in order.
// Existing regions are kept but detached from the new line.
func (r *Route) SetLineWaypoints(coords []orb.Point) {
	r.waypoints = append(orb.LineString(nil), coords...)
	for i := range r.regions {
		r.regions[i].Detached = true
	}
}

// InsertPolygonAt splices vertices into the waypoints immediately before or after
// waypoint index and records them as a new Region. An index outside the current
// waypoints is rejected and nothing changes.
func (r *Route) InsertPolygonAt(index int, pos Position, vertices []orb.Point) error {
	if index < 0 || index >= len(r.waypoints) {
		return fmt.Errorf("insert polygon at %d (%d waypoints): %w", index, len(r.waypoints), ErrIndexOutOfRange)
	}
	// vertices land next to the anchor, not at the end of the route
	at := index
	if pos == After {
		at = index + 1
	}
	next := make(orb.LineString, 0, len(r.waypoints)+len(vertices))
	next = append(next, r.waypoints[:at]...)
	next = append(next, vertices...)
	next = append(next, r.waypoints[at:]...)
	r.waypoints = next

	r.regions = append(r.regions, Region{
		Vertices: append(orb.Ring(nil), vertices...),
		Anchor:   index,
		Position: pos,
	})
	return nil
}

// Waypoints returns a copy of the route's waypoints.
func (r *Route) Waypoints() orb.LineString {
	return append(orb.LineString(nil), r.waypoints...)
}

// Regions returns a copy of the polygon regions in insertion order.
func (r *Route) Regions() []Region {
	out := make([]Region, len(r.regions))
	for i, reg := range r.regions {
		reg.Vertices = append(orb.Ring(nil), reg.Vertices...)
		out[i] = reg
	}
	return out
}

func (r *Route) Len() int { return len(r.waypoints) }

// SegmentDistances has one Leg per waypoint; leg i measures waypoint i-1 to i.
func (r *Route) SegmentDistances() []Leg {
	legs := make([]Leg, len(r.waypoints))
	for i := 1; i < len(r.waypoints); i++ {
		legs[i] = Leg{Km: Distance(r.waypoints[i-1], r.waypoints[i]), OK: true}
	}
	return legs
}

// TotalKm is the summed length of all legs.
func (r *Route) TotalKm() float64 {
	var total float64
	for _, l := range r.SegmentDistances() {
		total += l.Km
	}
	return total
}

// Bound covers the waypoints and every region.
func (r *Route) Bound() (orb.Bound, bool) {
	var pts []orb.Point
	pts = append(pts, r.waypoints...)
	for _, reg := range r.regions {
		pts = append(pts, reg.Vertices...)
	}
	if len(pts) == 0 {
		return orb.Bound{}, false
	}
	return orb.MultiPoint(pts).Bound(), true
}

// Reset drops all waypoints and regions.
func (r *Route) Reset() {
	r.waypoints = nil
	r.regions = nil
}
