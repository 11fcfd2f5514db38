package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads a FeatureCollection, a single Feature or a bare geometry.
func LoadGeoJSON(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, err
	}
	l, err := ParseGeoJSON(data)
	if err != nil {
		return Layer{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	l.Name = filepath.Base(path)
	return l, nil
}

// ParseGeoJSON decodes GeoJSON bytes into a layer.
func ParseGeoJSON(data []byte) (Layer, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Layer{}, err
	}
	var l Layer
	switch head.Type {
	case "":
		return Layer{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Layer{}, err
		}
		for _, f := range fc.Features {
			l.add(f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Layer{}, err
		}
		l.add(f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Layer{}, err
		}
		l.add(g.Geometry())
	}
	if l.Empty() {
		return Layer{}, errors.New("no geometries found")
	}
	return l, nil
}
