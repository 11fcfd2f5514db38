package draw

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	MinZoom = 0.0
	MaxZoom = 22.0

	// world width in meters at the Mercator equator
	worldMeters = 2 * math.Pi * orb.EarthRadius
	tileSize    = 256.0
)

// Viewport maps projected coordinates onto a terminal canvas. Each cell holds a
// 2x4 braille microgrid and one micro pixel is one map pixel at the current zoom.
type Viewport struct {
	center orb.Point // EPSG:3857
	zoom   float64
	w, h   int // cells
}

func newViewport(centerLonLat orb.Point, zoom float64) Viewport {
	return Viewport{center: FromGeographic(centerLonLat), zoom: zoom, w: 80, h: 24}
}

// Resolution is meters per micro pixel.
func (v Viewport) Resolution() float64 {
	return worldMeters / (tileSize * math.Pow(2, v.zoom))
}

func (v Viewport) Zoom() float64 { return v.zoom }

// Center returns the view center as [lon, lat].
func (v Viewport) Center() orb.Point { return ToGeographic(v.center) }

func (v Viewport) Size() (int, int) { return v.w, v.h }

func (v *Viewport) Resize(w, h int) {
	v.w = max(1, w)
	v.h = max(1, h)
}

// SetZoom clamps z into the supported range.
func (v *Viewport) SetZoom(z float64) {
	v.zoom = math.Min(MaxZoom, math.Max(MinZoom, z))
}

// Pan shifts the view by whole cells; positive dy moves south.
func (v *Viewport) Pan(dx, dy int) {
	res := v.Resolution()
	v.center[0] += float64(dx*2) * res
	v.center[1] -= float64(dy*4) * res
}

// Fit centers on b and picks the largest zoom that keeps b on screen.
func (v *Viewport) Fit(b orb.Bound) {
	lo := FromGeographic(b.Min)
	hi := FromGeographic(b.Max)
	v.center = orb.Point{(lo[0] + hi[0]) / 2, (lo[1] + hi[1]) / 2}
	spanX := hi[0] - lo[0]
	spanY := hi[1] - lo[1]
	if spanX <= 0 && spanY <= 0 {
		return
	}
	// leave a one-cell margin on each side
	resX := spanX / float64(max(1, v.w*2-4))
	resY := spanY / float64(max(1, v.h*4-8))
	res := math.Max(resX, resY)
	v.SetZoom(math.Floor(math.Log2(worldMeters / (tileSize * res))))
}

// Micro returns the microgrid position of a projected point.
func (v Viewport) Micro(p orb.Point) (int, int) {
	res := v.Resolution()
	x := int(math.Round((p[0]-v.center[0])/res)) + v.w
	y := v.h*2 - int(math.Round((p[1]-v.center[1])/res))
	return x, y
}

// MicroGeo is Micro for a [lon, lat] point.
func (v Viewport) MicroGeo(p orb.Point) (int, int) {
	return v.Micro(FromGeographic(p))
}

// Cell returns the cell containing a projected point.
func (v Viewport) Cell(p orb.Point) (int, int) {
	mx, my := v.Micro(p)
	return floorDiv(mx, 2), floorDiv(my, 4)
}

// CellToProjected returns the projected position at the middle of a cell.
func (v Viewport) CellToProjected(cx, cy int) orb.Point {
	res := v.Resolution()
	mx := cx*2 + 1
	my := cy*4 + 2
	return orb.Point{
		v.center[0] + float64(mx-v.w)*res,
		v.center[1] + float64(v.h*2-my)*res,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
