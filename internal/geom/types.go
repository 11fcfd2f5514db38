package geom

import "github.com/paulmach/orb"

// Layer is a reference geometry set drawn underneath the mission.
type Layer struct {
	Name     string
	Points   []orb.Point
	Lines    []orb.LineString
	Polygons []orb.Polygon // rings: first outer, following holes
	Bound    orb.Bound

	bounded bool
}

// Empty reports whether the layer holds no geometry.
func (l *Layer) Empty() bool {
	return len(l.Points) == 0 && len(l.Lines) == 0 && len(l.Polygons) == 0
}

// Counts summarises the layer for status lines.
func (l *Layer) Counts() (pts, lines, polys int) {
	return len(l.Points), len(l.Lines), len(l.Polygons)
}

// Route picks a line to import as mission waypoints: the first line string,
// else the points in file order.
func (l *Layer) Route() ([]orb.Point, bool) {
	if len(l.Lines) > 0 && len(l.Lines[0]) > 0 {
		return append([]orb.Point(nil), l.Lines[0]...), true
	}
	if len(l.Points) > 0 {
		return append([]orb.Point(nil), l.Points...), true
	}
	return nil, false
}

func (l *Layer) extend(pts ...orb.Point) {
	for _, p := range pts {
		if !l.bounded {
			l.Bound, l.bounded = p.Bound(), true
			continue
		}
		l.Bound = l.Bound.Extend(p)
	}
}

func (l *Layer) addPoint(p orb.Point) {
	l.extend(p)
	l.Points = append(l.Points, p)
}

func (l *Layer) addLine(ls orb.LineString) {
	if len(ls) == 0 {
		return
	}
	l.extend(ls...)
	l.Lines = append(l.Lines, ls)
}

func (l *Layer) addPolygon(p orb.Polygon) {
	if len(p) == 0 {
		return
	}
	for _, r := range p {
		l.extend(r...)
	}
	l.Polygons = append(l.Polygons, p)
}

// add walks any orb geometry into the layer.
func (l *Layer) add(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		l.addPoint(g)
	case orb.MultiPoint:
		for _, p := range g {
			l.addPoint(p)
		}
	case orb.LineString:
		l.addLine(g)
	case orb.MultiLineString:
		for _, ls := range g {
			l.addLine(ls)
		}
	case orb.Ring:
		l.addPolygon(orb.Polygon{g})
	case orb.Polygon:
		l.addPolygon(g)
	case orb.MultiPolygon:
		for _, p := range g {
			l.addPolygon(p)
		}
	case orb.Collection:
		for _, c := range g {
			l.add(c)
		}
	}
}
