package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-kml"
	"github.com/twpayne/go-polyline"

	"missionmap/internal/mission"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the accepted export format names.
var Formats = []string{"geojson", "kml", "polyline", "wkt"}

var extensions = map[string]string{
	"geojson":  ".geojson",
	"kml":      ".kml",
	"polyline": ".txt",
	"wkt":      ".wkt",
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// Exporter writes missions into Dir using Format.
type Exporter struct {
	Dir    string
	Format string
	Now    func() time.Time
}

// Encode renders the route in the named format.
func Encode(format string, r *mission.Route) ([]byte, error) {
	switch strings.ToLower(format) {
	case "geojson":
		return GeoJSON(r)
	case "kml":
		return KML(r)
	case "polyline":
		return Polyline(r), nil
	case "wkt":
		return []byte(WKT(r)), nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// Write encodes r and stores it as mission-<timestamp>.<ext>, returning the path.
func (e Exporter) Write(r *mission.Route) (string, error) {
	format := strings.ToLower(e.Format)
	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("%q: %w", e.Format, ErrUnknownFormat)
	}
	data, err := Encode(format, r)
	if err != nil {
		return "", err
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(e.Dir, "mission-"+now().Format("20060102-150405")+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// GeoJSON renders the route as a LineString feature followed by one feature per region.
func GeoJSON(r *mission.Route) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	legs := r.SegmentDistances()
	kms := make([]any, len(legs))
	for i, l := range legs {
		if l.OK {
			kms[i] = l.Km
		}
	}
	route := geojson.NewFeature(r.Waypoints())
	route.Properties["kind"] = "route"
	route.Properties["waypoints"] = r.Len()
	route.Properties["total_km"] = r.TotalKm()
	route.Properties["legs_km"] = kms
	fc.Append(route)

	for i, reg := range r.Regions() {
		f := geojson.NewFeature(regionGeometry(reg.Vertices))
		f.Properties["kind"] = "region"
		f.Properties["region"] = i + 1
		if reg.Detached {
			f.Properties["detached"] = true
		} else {
			f.Properties["anchor"] = reg.Anchor
			f.Properties["position"] = reg.Position.String()
		}
		fc.Append(f)
	}
	return fc.MarshalJSON()
}

// regions with fewer than three vertices cannot form a valid polygon
func regionGeometry(vertices orb.Ring) orb.Geometry {
	if len(vertices) < 3 {
		return orb.MultiPoint(append([]orb.Point(nil), vertices...))
	}
	return orb.Polygon{closed(vertices)}
}

func closed(r orb.Ring) orb.Ring {
	out := append(orb.Ring(nil), r...)
	if !out.Closed() {
		out = append(out, out[0])
	}
	return out
}

// KML renders the route and its regions as placemarks in one document.
func KML(r *mission.Route) ([]byte, error) {
	children := []kml.Element{
		kml.Name("Mission"),
		kml.Description(fmt.Sprintf("%d waypoints, %.2f km", r.Len(), r.TotalKm())),
		kml.Placemark(
			kml.Name("Route"),
			kml.LineString(kml.Coordinates(kmlCoords(r.Waypoints())...)),
		),
	}
	for i, reg := range r.Regions() {
		name := kml.Name(fmt.Sprintf("Polygon %d", i+1))
		if len(reg.Vertices) < 3 {
			children = append(children, kml.Placemark(name,
				kml.LineString(kml.Coordinates(kmlCoords(reg.Vertices)...))))
			continue
		}
		children = append(children, kml.Placemark(name,
			kml.Polygon(kml.OuterBoundaryIs(kml.LinearRing(kml.Coordinates(kmlCoords(closed(reg.Vertices))...))))))
	}
	var buf bytes.Buffer
	if err := kml.KML(kml.Document(children...)).WriteIndent(&buf, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func kmlCoords(pts []orb.Point) []kml.Coordinate {
	out := make([]kml.Coordinate, len(pts))
	for i, p := range pts {
		out[i] = kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
	}
	return out
}

// Polyline encodes the route waypoints in the Google encoded polyline format.
func Polyline(r *mission.Route) []byte {
	wps := r.Waypoints()
	coords := make([][]float64, len(wps))
	for i, p := range wps {
		coords[i] = []float64{p.Lat(), p.Lon()}
	}
	return polyline.EncodeCoords(coords)
}

// WKT renders the route and regions as a GEOMETRYCOLLECTION.
func WKT(r *mission.Route) string {
	c := orb.Collection{r.Waypoints()}
	for _, reg := range r.Regions() {
		c = append(c, regionGeometry(reg.Vertices))
	}
	return wkt.MarshalString(c)
}

// Copy puts the WKT rendering of r on the system clipboard.
func Copy(r *mission.Route) error {
	if err := clipboardWrite(WKT(r)); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
