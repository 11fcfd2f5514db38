package geom

import (
	"errors"
	"path/filepath"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// LoadShapefile reads points, polylines and polygons from an ESRI shapefile.
// Multi-part shapes are split on their part offsets.
func LoadShapefile(path string) (Layer, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Layer{}, err
	}
	defer r.Close()

	l := Layer{Name: filepath.Base(path)}
	for r.Next() {
		_, s := r.Shape()
		switch g := s.(type) {
		case *shp.Point:
			l.addPoint(orb.Point{g.X, g.Y})
		case *shp.PolyLine:
			for _, part := range shpParts(g.Parts, g.Points) {
				l.addLine(orb.LineString(part))
			}
		case *shp.Polygon:
			var poly orb.Polygon
			for _, part := range shpParts(g.Parts, g.Points) {
				poly = append(poly, orb.Ring(part))
			}
			l.addPolygon(poly)
		}
	}
	if l.Empty() {
		return Layer{}, errors.New("shp: no shapes found")
	}
	return l, nil
}

func shpParts(parts []int32, pts []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(pts))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start >= end || int(end) > len(pts) {
			continue
		}
		seg := make([]orb.Point, 0, end-start)
		for _, p := range pts[start:end] {
			seg = append(seg, orb.Point{p.X, p.Y})
		}
		out = append(out, seg)
	}
	return out
}
