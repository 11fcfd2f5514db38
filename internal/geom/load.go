package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported reports whether path has an extension Load understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".csv", ".kml", ".wkt", ".shp":
		return true
	}
	return false
}

// Load reads a reference layer, picking the decoder from the file extension.
func Load(path string) (Layer, error) {
	var (
		l   Layer
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		l, err = LoadGeoJSON(path)
	case ".csv":
		l, err = LoadCSV(path)
	case ".kml":
		l, err = LoadKML(path)
	case ".shp":
		l, err = LoadShapefile(path)
	case ".wkt":
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			l, err = ParseWKT(string(data))
			l.Name = filepath.Base(path)
		}
	default:
		return Layer{}, fmt.Errorf("unsupported file: %q", ext)
	}
	if err != nil {
		return Layer{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return l, nil
}
