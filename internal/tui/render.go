package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"missionmap/internal/draw"
	"missionmap/internal/mission"
)

// paint classes, in increasing draw priority
const (
	paintNone = iota
	paintLayer
	paintMission
	paintRegion
	paintCapture
	paintCursor
	paintCount
)

var paintStyles = [paintCount]lipgloss.Style{
	paintLayer:   dimStyle,
	paintMission: missionStyle,
	paintRegion:  regionStyle,
	paintCapture: captureStyle,
	paintCursor:  captureStyle,
}

// renderMap draws reference layers, the mission and the capture in progress
// onto a w x h braille canvas.
func (m Model) renderMap(w, h int) string {
	v := m.mp.Viewport
	v.Resize(w, h)

	var bufs [paintCount]*brailleBuf
	for i := paintLayer; i < paintCursor; i++ {
		bufs[i] = newBrailleBuf(w, h)
	}

	if m.showLayers {
		m.paintLayers(v, bufs[paintLayer])
	}
	route := m.ctl.Route()
	for _, r := range route.Regions() {
		ring := microRing(v, r.Vertices)
		bufs[paintRegion].fill(ring)
		bufs[paintRegion].ring(ring)
	}
	m.paintRoute(v, route, bufs[paintMission])
	m.paintCapture(v, bufs[paintCapture])

	lines := make([]string, h)
	cls := make([]int, w)
	row := make([]rune, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cls[x], row[x] = paintNone, ' '
			for p := paintCapture; p >= paintLayer; p-- {
				if r := bufs[p].glyph(x, y); r != ' ' {
					cls[x], row[x] = p, r
					break
				}
			}
		}
		if y == m.cursorY && m.cursorX >= 0 && m.cursorX < w {
			cls[m.cursorX], row[m.cursorX] = paintCursor, '+'
		}
		lines[y] = styleRuns(row, cls)
	}
	return strings.Join(lines, "\n")
}

// styleRuns renders consecutive cells of the same class with one style call.
func styleRuns(row []rune, cls []int) string {
	var sb strings.Builder
	start := 0
	for x := 1; x <= len(row); x++ {
		if x < len(row) && cls[x] == cls[start] {
			continue
		}
		seg := string(row[start:x])
		if c := cls[start]; c == paintNone {
			sb.WriteString(seg)
		} else {
			sb.WriteString(paintStyles[c].Render(seg))
		}
		start = x
	}
	return sb.String()
}

func (m Model) paintLayers(v draw.Viewport, b *brailleBuf) {
	for _, l := range m.layers {
		for _, poly := range l.Polygons {
			for _, r := range poly {
				b.ring(microRing(v, r))
			}
		}
		for _, ls := range l.Lines {
			b.polyline(microPath(v, ls))
		}
		for _, p := range l.Points {
			b.setPixel(v.MicroGeo(p))
		}
	}
}

func (m Model) paintRoute(v draw.Viewport, r *mission.Route, b *brailleBuf) {
	path := microPath(v, r.Waypoints())
	b.polyline(path)
	for _, p := range path {
		b.dot(p[0], p[1])
	}
}

// paintCapture draws the vertices of the armed session plus a rubber band to
// the crosshair; polygons also close back to their first vertex.
func (m Model) paintCapture(v draw.Viewport, b *brailleBuf) {
	s := m.mp.Active()
	if s == nil {
		return
	}
	var path [][2]int
	for _, p := range s.Vertices() {
		x, y := v.Micro(p)
		path = append(path, [2]int{x, y})
	}
	for _, p := range path {
		b.dot(p[0], p[1])
	}
	if len(path) == 0 {
		return
	}
	path = append(path, [2]int{m.cursorX*2 + 1, m.cursorY*4 + 2})
	if s.Kind() == draw.Polygon && len(path) > 2 {
		b.ring(path)
		return
	}
	b.polyline(path)
}

func microPath(v draw.Viewport, pts []orb.Point) [][2]int {
	out := make([][2]int, 0, len(pts))
	for _, p := range pts {
		x, y := v.MicroGeo(p)
		out = append(out, [2]int{x, y})
	}
	return out
}

func microRing(v draw.Viewport, r orb.Ring) [][2]int {
	pts := microPath(v, r)
	// drop the explicit closing point, ring() closes on its own
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

func (b *brailleBuf) polyline(pts [][2]int) {
	for i := 1; i < len(pts); i++ {
		b.line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
	if len(pts) == 1 {
		b.setPixel(pts[0][0], pts[0][1])
	}
}

// dot marks a waypoint with a 2x2 block.
func (b *brailleBuf) dot(x, y int) {
	x -= x % 2
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 2; dy++ {
			b.setPixel(x+dx, y+dy)
		}
	}
}

// cursorGeo returns the crosshair position as [lon, lat].
func (m Model) cursorGeo() orb.Point {
	return draw.ToGeographic(m.mp.CellToProjected(m.cursorX, m.cursorY))
}

// inspectNearest describes the waypoint closest to the crosshair.
func (m Model) inspectNearest() (string, bool) {
	route := m.ctl.Route()
	wps := route.Waypoints()
	if len(wps) == 0 {
		return "", false
	}
	best, bestD := -1, math.MaxInt
	for i, p := range wps {
		cx, cy := m.mp.Cell(draw.FromGeographic(p))
		dx, dy := cx-m.cursorX, cy-m.cursorY
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = i, d
		}
	}
	p := wps[best]
	legs := route.SegmentDistances()
	meta := []string{
		fmt.Sprintf("waypoint: %02d of %d", best+1, len(wps)),
		fmt.Sprintf("lat=%.6f lon=%.6f", p.Lat(), p.Lon()),
		"leg: " + legKm(legs[best]),
		fmt.Sprintf("route: %.2f km", route.TotalKm()),
	}
	return strings.Join(meta, "\n"), true
}
