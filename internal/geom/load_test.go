package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadGeoJSON_FeatureCollection(t *testing.T) {
	p := writeFile(t, "harbour.geojson", `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "pier"}, "geometry": {"type": "Point", "coordinates": [72.83, 18.92]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[72.8, 19.0], [72.9, 19.1]]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "Polygon", "coordinates": [[[72.7, 18.9], [72.75, 18.9], [72.75, 18.95], [72.7, 18.9]]]}}
  ]
}`)
	l, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "harbour.geojson", l.Name)
	pts, lines, polys := l.Counts()
	assert.Equal(t, 1, pts)
	assert.Equal(t, 1, lines)
	assert.Equal(t, 1, polys)
	assert.Equal(t, orb.Bound{Min: orb.Point{72.7, 18.9}, Max: orb.Point{72.9, 19.1}}, l.Bound)

	route, ok := l.Route()
	require.True(t, ok)
	assert.Equal(t, []orb.Point{{72.8, 19.0}, {72.9, 19.1}}, route)
}

func TestParseGeoJSON_BareGeometryAndFeature(t *testing.T) {
	l, err := ParseGeoJSON([]byte(`{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}`))
	require.NoError(t, err)
	assert.Len(t, l.Points, 2)

	l, err = ParseGeoJSON([]byte(`{"type":"Feature","properties":null,"geometry":{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}}`))
	require.NoError(t, err)
	assert.Len(t, l.Lines, 2)
}

func TestParseGeoJSON_Errors(t *testing.T) {
	_, err := ParseGeoJSON([]byte(`{}`))
	assert.Error(t, err)
	_, err = ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.EqualError(t, err, "no geometries found")
	_, err = ParseGeoJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "stops.csv", "name, Latitude, LNG\nA,19.0,72.8\nbad,x,y\nB,19.1,72.9\nshort\n")
	l, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []orb.Point{{72.8, 19.0}, {72.9, 19.1}}, l.Points)

	route, ok := l.Route()
	require.True(t, ok)
	assert.Len(t, route, 2)

	_, err = Load(writeFile(t, "nope.csv", "a,b\n1,2\n"))
	assert.ErrorContains(t, err, "latitude/longitude columns not found")
}

func TestLoadKML_NestedPlacemarks(t *testing.T) {
	p := writeFile(t, "mission.kml", `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark><name>start</name><Point><coordinates>72.8,19.0,0</coordinates></Point></Placemark>
      <Placemark>
        <LineString><coordinates>72.8,19.0 72.9,19.1,10</coordinates></LineString>
      </Placemark>
      <Placemark>
        <Polygon>
          <outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs>
          <innerBoundaryIs><LinearRing><coordinates>0.2,0.2 0.4,0.2 0.4,0.4 0.2,0.2</coordinates></LinearRing></innerBoundaryIs>
        </Polygon>
      </Placemark>
    </Folder>
  </Document>
</kml>`)
	l, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []orb.Point{{72.8, 19.0}}, l.Points)
	require.Len(t, l.Lines, 1)
	assert.Equal(t, orb.LineString{{72.8, 19.0}, {72.9, 19.1}}, l.Lines[0])
	require.Len(t, l.Polygons, 1)
	assert.Len(t, l.Polygons[0], 2)
}

func TestParseKML_Empty(t *testing.T) {
	_, err := ParseKML(strings.NewReader(`<kml><Document/></kml>`))
	assert.Error(t, err)
}

func TestParseWKT(t *testing.T) {
	l, err := ParseWKT("LINESTRING (72.8 19.0, 72.9 19.1)")
	require.NoError(t, err)
	require.Len(t, l.Lines, 1)
	assert.Equal(t, orb.Point{72.9, 19.1}, l.Lines[0][1])

	l, err = ParseWKT("POLYGON((0 0, 1 0, 1 1, 0 0))")
	require.NoError(t, err)
	assert.Len(t, l.Polygons, 1)

	_, err = ParseWKT("   ")
	assert.EqualError(t, err, "empty wkt")
	_, err = ParseWKT("CIRCLE(1 2)")
	assert.Error(t, err)
}

func TestLoadShapefile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "roads.shp")
	w, err := shp.Create(p, shp.POLYLINE)
	require.NoError(t, err)
	w.Write(shp.NewPolyLine([][]shp.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
		{{X: 5, Y: 5}, {X: 6, Y: 6}, {X: 7, Y: 5}},
	}))
	w.Close()

	l, err := Load(p)
	require.NoError(t, err)
	require.Len(t, l.Lines, 2)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}}, l.Lines[0])
	assert.Len(t, l.Lines[1], 3)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{7, 6}}, l.Bound)
}

func TestLoad_Unsupported(t *testing.T) {
	assert.False(t, Supported("notes.txt"))
	assert.True(t, Supported("Coast.SHP"))
	_, err := Load("notes.txt")
	assert.ErrorContains(t, err, "unsupported file")
}
