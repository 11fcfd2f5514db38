package mission

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]orb.Point{
		{{72.8, 19.0}, {72.9, 19.1}},
		{{-120.5436, 38.0675}, {-120.4561, 38.1391}},
		{{179.9, -45}, {-179.9, -45}},
		{{0, 89.9}, {90, -89.9}},
	}
	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]))
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	for _, p := range []orb.Point{{0, 0}, {72.868679, 19.05418}, {-180, 90}, {12.5, -33.3}} {
		assert.Zero(t, Distance(p, p))
	}
}

func TestDistance_AdditiveAlongMeridian(t *testing.T) {
	a := orb.Point{0, 0}
	b := orb.Point{0, 10}
	c := orb.Point{0, 20}
	assert.InDelta(t, Distance(a, c), Distance(a, b)+Distance(b, c), 1e-9)
	assert.InDelta(t, 1113.171, Distance(a, b), 1e-3)
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(orb.Point{0, 0}, orb.Point{180, 0})
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
	assert.False(t, math.IsNaN(d))
}

func TestSegmentDistances_TwoWaypoints(t *testing.T) {
	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{{72.8, 19.0}, {72.9, 19.1}})

	legs := r.SegmentDistances()
	require.Len(t, legs, 2)
	assert.False(t, legs[0].OK)
	assert.True(t, legs[1].OK)
	// haversine with R = 6378 km
	assert.InDelta(t, 15.3176, legs[1].Km, 1e-3)
	assert.InDelta(t, legs[1].Km, r.TotalKm(), 1e-12)
}

func TestSegmentDistances_Empty(t *testing.T) {
	assert.Empty(t, NewRoute().SegmentDistances())
}

func TestSegmentDistances_SingleWaypoint(t *testing.T) {
	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{{72.8, 19.0}})
	legs := r.SegmentDistances()
	require.Len(t, legs, 1)
	assert.False(t, legs[0].OK)
	assert.Zero(t, r.TotalKm())
}

func TestSegmentDistances_MatchesDistance(t *testing.T) {
	pts := []orb.Point{{72.8, 19.0}, {72.85, 19.02}, {72.9, 19.1}, {72.7, 19.3}}
	r := NewRoute()
	r.SetLineWaypoints(pts)
	legs := r.SegmentDistances()
	require.Len(t, legs, len(pts))
	for i := 1; i < len(pts); i++ {
		assert.Equal(t, Distance(pts[i-1], pts[i]), legs[i].Km)
	}
}

func TestSetLineWaypoints_ReplacesAndCopies(t *testing.T) {
	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{{1, 1}, {2, 2}, {3, 3}})
	in := []orb.Point{{4, 4}, {5, 5}}
	r.SetLineWaypoints(in)
	in[0] = orb.Point{9, 9}
	assert.Equal(t, orb.LineString{{4, 4}, {5, 5}}, r.Waypoints())

	got := r.Waypoints()
	got[1] = orb.Point{0, 0}
	assert.Equal(t, orb.Point{5, 5}, r.Waypoints()[1])
}

func TestInsertPolygonAt_Before(t *testing.T) {
	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{{72.8, 19.0}, {72.9, 19.1}, {73.0, 19.2}})
	poly := []orb.Point{{72.85, 19.05}, {72.86, 19.06}}

	require.NoError(t, r.InsertPolygonAt(1, Before, poly))
	assert.Equal(t, orb.LineString{{72.8, 19.0}, {72.85, 19.05}, {72.86, 19.06}, {72.9, 19.1}, {73.0, 19.2}}, r.Waypoints())

	regions := r.Regions()
	require.Len(t, regions, 1)
	assert.Equal(t, orb.Ring{{72.85, 19.05}, {72.86, 19.06}}, regions[0].Vertices)
	assert.Equal(t, 1, regions[0].Anchor)
	assert.Equal(t, Before, regions[0].Position)
}

func TestInsertPolygonAt_After(t *testing.T) {
	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{{0, 0}, {1, 1}})
	require.NoError(t, r.InsertPolygonAt(1, After, []orb.Point{{5, 5}, {6, 6}, {7, 5}}))
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}, {5, 5}, {6, 6}, {7, 5}}, r.Waypoints())

	require.NoError(t, r.InsertPolygonAt(0, Before, []orb.Point{{-1, -1}}))
	assert.Equal(t, orb.Point{-1, -1}, r.Waypoints()[0])
	assert.Len(t, r.Regions(), 2)
}

func TestInsertPolygonAt_IncreasesRegionCountByOne(t *testing.T) {
	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{{72.8, 19.0}, {72.9, 19.1}})
	before := len(r.Regions())
	require.NoError(t, r.InsertPolygonAt(0, Before, []orb.Point{{72.85, 19.05}, {72.86, 19.06}}))
	assert.Len(t, r.Regions(), before+1)
	assert.Equal(t, orb.Ring{{72.85, 19.05}, {72.86, 19.06}}, r.Regions()[before].Vertices)
}

func TestInsertPolygonAt_OutOfRange(t *testing.T) {
	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{{0, 0}, {1, 1}})
	for _, i := range []int{-1, 2, 10} {
		err := r.InsertPolygonAt(i, Before, []orb.Point{{5, 5}})
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}}, r.Waypoints())
	assert.Empty(t, r.Regions())

	assert.ErrorIs(t, NewRoute().InsertPolygonAt(0, Before, nil), ErrIndexOutOfRange)
}

func TestSegmentDistances_FollowSplicedWaypointsNotRegionRing(t *testing.T) {
	a, b := orb.Point{72.8, 19.0}, orb.Point{72.9, 19.1}
	v1, v2, v3 := orb.Point{72.85, 19.02}, orb.Point{72.87, 19.02}, orb.Point{72.86, 19.06}

	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{a, b})
	require.NoError(t, r.InsertPolygonAt(1, Before, []orb.Point{v1, v2, v3}))

	wps := r.Waypoints()
	require.Equal(t, orb.LineString{a, v1, v2, v3, b}, wps)
	legs := r.SegmentDistances()
	require.Len(t, legs, len(wps))
	assert.False(t, legs[0].OK)
	for i := 1; i < len(wps); i++ {
		assert.InDelta(t, Distance(wps[i-1], wps[i]), legs[i].Km, 1e-12, "leg %d", i)
	}

	// the ring's closing edge v3 -> v1 is not a leg
	want := Distance(a, v1) + Distance(v1, v2) + Distance(v2, v3) + Distance(v3, b)
	assert.InDelta(t, want, r.TotalKm(), 1e-9)
	assert.NotEqual(t, Distance(a, b), r.TotalKm())
	require.Len(t, r.Regions(), 1)
	assert.Equal(t, orb.Ring{v1, v2, v3}, r.Regions()[0].Vertices)
}

func TestSetLineWaypoints_DetachesRegions(t *testing.T) {
	r := NewRoute()
	r.SetLineWaypoints([]orb.Point{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}})
	require.NoError(t, r.InsertPolygonAt(4, Before, []orb.Point{{1, 1}, {1, 2}, {2, 2}}))
	assert.False(t, r.Regions()[0].Detached)

	r.SetLineWaypoints([]orb.Point{{5, 5}, {6, 6}})
	require.Len(t, r.Regions(), 1)
	assert.True(t, r.Regions()[0].Detached)
	assert.Equal(t, 2, r.Len())

	require.NoError(t, r.InsertPolygonAt(0, After, []orb.Point{{5, 6}}))
	regions := r.Regions()
	assert.True(t, regions[0].Detached)
	assert.False(t, regions[1].Detached)
}

func TestBoundAndReset(t *testing.T) {
	r := NewRoute()
	_, ok := r.Bound()
	assert.False(t, ok)

	r.SetLineWaypoints([]orb.Point{{0, 0}, {2, 1}})
	require.NoError(t, r.InsertPolygonAt(0, Before, []orb.Point{{-3, 4}}))
	b, ok := r.Bound()
	require.True(t, ok)
	assert.Equal(t, orb.Bound{Min: orb.Point{-3, 0}, Max: orb.Point{2, 4}}, b)

	r.Reset()
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Regions())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "before", Before.String())
	assert.Equal(t, "after", After.String())
	assert.Equal(t, "Position(7)", Position(7).String())
}
