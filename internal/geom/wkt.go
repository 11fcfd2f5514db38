package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKT parses one WKT geometry (POINT, MULTIPOINT, LINESTRING, POLYGON,
// their MULTI forms and GEOMETRYCOLLECTION).
func ParseWKT(s string) (Layer, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Layer{}, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Layer{}, fmt.Errorf("wkt: %w", err)
	}
	var l Layer
	l.add(g)
	if l.Empty() {
		return Layer{}, errors.New("wkt: no coordinates parsed")
	}
	return l, nil
}
