package draw

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mumbai = orb.Point{72.868679, 19.054180}

func newTestMap(t *testing.T) *Map {
	t.Helper()
	m, err := NewMap(Options{Center: mumbai, Zoom: 10})
	require.NoError(t, err)
	return m
}

func TestNewMap_RejectsInvalidView(t *testing.T) {
	cases := []Options{
		{Center: orb.Point{0, 89}, Zoom: 3},
		{Center: orb.Point{181, 0}, Zoom: 3},
		{Center: mumbai, Zoom: -1},
		{Center: mumbai, Zoom: 23},
	}
	for _, o := range cases {
		_, err := NewMap(o)
		assert.ErrorIs(t, err, ErrInvalidView, "options %+v", o)
	}
}

func TestProjection_RoundTrip(t *testing.T) {
	p := FromGeographic(mumbai)
	assert.InDelta(t, 8111700, p[0], 1000)
	back := ToGeographic(p)
	assert.InDelta(t, mumbai.Lon(), back.Lon(), 1e-9)
	assert.InDelta(t, mumbai.Lat(), back.Lat(), 1e-9)
}

func TestFinish_DeliversGeographicCoordsOnce(t *testing.T) {
	m := newTestMap(t)
	var got []Result
	_, err := m.BeginDraw(LineString, func(r Result) { got = append(got, r) })
	require.NoError(t, err)

	a := orb.Point{72.8, 19.0}
	b := orb.Point{72.9, 19.1}
	require.NoError(t, m.AddVertex(FromGeographic(a)))
	require.NoError(t, m.AddVertex(FromGeographic(b)))
	require.NoError(t, m.Finish())

	require.Len(t, got, 1)
	assert.Equal(t, LineString, got[0].Kind)
	require.Len(t, got[0].Coords, 2)
	assert.InDelta(t, a.Lon(), got[0].Coords[0].Lon(), 1e-9)
	assert.InDelta(t, b.Lat(), got[0].Coords[1].Lat(), 1e-9)

	assert.Nil(t, m.Active())
	assert.ErrorIs(t, m.Finish(), ErrNoSession)
	assert.Len(t, got, 1)
}

func TestBeginDraw_ReplacesPendingSession(t *testing.T) {
	m := newTestMap(t)
	var first, second int
	s1, err := m.BeginDraw(LineString, func(Result) { first++ })
	require.NoError(t, err)
	require.NoError(t, m.AddVertex(FromGeographic(mumbai)))

	s2, err := m.BeginDraw(LineString, func(Result) { second++ })
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID(), s2.ID())
	assert.Equal(t, 0, m.Active().Len())

	require.NoError(t, m.AddVertex(FromGeographic(mumbai)))
	require.NoError(t, m.Finish())
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestFinish_PolygonNeedsThreeVertices(t *testing.T) {
	m := newTestMap(t)
	called := false
	_, err := m.BeginDraw(Polygon, func(Result) { called = true })
	require.NoError(t, err)
	require.NoError(t, m.AddVertex(orb.Point{0, 0}))
	require.NoError(t, m.AddVertex(orb.Point{1000, 0}))

	assert.ErrorIs(t, m.Finish(), ErrTooFewVertices)
	assert.False(t, called)
	require.NotNil(t, m.Active())

	require.NoError(t, m.AddVertex(orb.Point{1000, 1000}))
	require.NoError(t, m.Finish())
	assert.True(t, called)
}

func TestFinish_CallbackMayArmNextSession(t *testing.T) {
	m := newTestMap(t)
	_, err := m.BeginDraw(LineString, func(Result) {
		_, err := m.BeginDraw(LineString, nil)
		assert.NoError(t, err)
	})
	require.NoError(t, err)
	require.NoError(t, m.AddVertex(orb.Point{}))
	require.NoError(t, m.Finish())
	assert.NotNil(t, m.Active())
}

func TestUndoVertex(t *testing.T) {
	m := newTestMap(t)
	assert.ErrorIs(t, m.UndoVertex(), ErrNoSession)
	_, err := m.BeginDraw(LineString, nil)
	require.NoError(t, err)
	require.NoError(t, m.UndoVertex())
	require.NoError(t, m.AddVertex(orb.Point{1, 1}))
	require.NoError(t, m.AddVertex(orb.Point{2, 2}))
	require.NoError(t, m.UndoVertex())
	assert.Equal(t, []orb.Point{{1, 1}}, m.Active().Vertices())
}

func TestClose(t *testing.T) {
	m := newTestMap(t)
	_, err := m.BeginDraw(Polygon, nil)
	require.NoError(t, err)
	m.Close()
	assert.Nil(t, m.Active())
	_, err = m.BeginDraw(LineString, nil)
	assert.ErrorIs(t, err, ErrClosed)
}
