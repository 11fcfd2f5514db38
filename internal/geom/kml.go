package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlPlacemark struct {
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
	Multi      *struct {
		Points      []kmlCoords  `xml:"Point"`
		LineStrings []kmlCoords  `xml:"LineString"`
		Polygons    []kmlPolygon `xml:"Polygon"`
	} `xml:"MultiGeometry"`
}

// LoadKML extracts Point, LineString and Polygon placemarks at any depth.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, err
	}
	defer f.Close()
	l, err := ParseKML(f)
	if err != nil {
		return Layer{}, err
	}
	l.Name = filepath.Base(path)
	return l, nil
}

// ParseKML reads KML from r.
func ParseKML(r io.Reader) (Layer, error) {
	var l Layer
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Layer{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Layer{}, err
		}
		l.addPlacemark(pm)
	}
	if l.Empty() {
		return Layer{}, errors.New("kml: no placemarks found")
	}
	return l, nil
}

func (l *Layer) addPlacemark(pm kmlPlacemark) {
	if pm.Point != nil {
		for _, p := range parseKMLCoords(pm.Point.Coordinates) {
			l.addPoint(p)
		}
	}
	if pm.LineString != nil {
		l.addLine(parseKMLCoords(pm.LineString.Coordinates))
	}
	if pm.Polygon != nil {
		l.addPolygon(kmlToPolygon(*pm.Polygon))
	}
	if m := pm.Multi; m != nil {
		for _, c := range m.Points {
			for _, p := range parseKMLCoords(c.Coordinates) {
				l.addPoint(p)
			}
		}
		for _, c := range m.LineStrings {
			l.addLine(parseKMLCoords(c.Coordinates))
		}
		for _, p := range m.Polygons {
			l.addPolygon(kmlToPolygon(p))
		}
	}
}

func kmlToPolygon(p kmlPolygon) orb.Polygon {
	outer := orb.Ring(parseKMLCoords(p.Outer.Coordinates))
	if len(outer) == 0 {
		return nil
	}
	poly := orb.Polygon{outer}
	for _, in := range p.Inner {
		if r := orb.Ring(parseKMLCoords(in.Coordinates)); len(r) > 0 {
			poly = append(poly, r)
		}
	}
	return poly
}

// coordinates may contain multiple tuples separated by whitespace
func parseKMLCoords(s string) []orb.Point {
	var out []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, orb.Point{lon, lat})
	}
	return out
}
