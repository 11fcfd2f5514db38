package tui

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
)

// brailleBuf is a cell grid where every cell is a 2x4 block of micro-pixels.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dot bits by [column][row] inside a cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel; anything off the grid is dropped.
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[mx%2][my%4]
}

// line draws a segment on the microgrid using Bresenham. The segment is
// clipped to the grid first, so only visible pixels are walked however far
// off screen the endpoints are.
func (b *brailleBuf) line(x0, y0, x1, y1 int) {
	var ok bool
	if x0, y0, x1, y1, ok = b.clip(x0, y0, x1, y1); !ok {
		return
	}
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.w*2 && y < b.h*4
}

// clip trims a segment to the microgrid, with a one pixel margin so rounding
// never loses an edge pixel. ok is false when nothing of it is visible.
func (b *brailleBuf) clip(x0, y0, x1, y1 int) (int, int, int, int, bool) {
	if b.inside(x0, y0) && b.inside(x1, y1) {
		return x0, y0, x1, y1, true
	}
	bound := orb.Bound{
		Min: orb.Point{-1, -1},
		Max: orb.Point{float64(b.w * 2), float64(b.h * 4)},
	}
	seg := orb.LineString{{float64(x0), float64(y0)}, {float64(x1), float64(y1)}}
	parts := clip.LineString(bound, seg)
	if len(parts) == 0 || len(parts[0]) < 2 {
		return 0, 0, 0, 0, false
	}
	a, c := parts[0][0], parts[0][len(parts[0])-1]
	return int(math.Round(a[0])), int(math.Round(a[1])), int(math.Round(c[0])), int(math.Round(c[1])), true
}

// ring draws a closed outline.
func (b *brailleBuf) ring(pts [][2]int) {
	for i := range pts {
		a, c := pts[i], pts[(i+1)%len(pts)]
		b.line(a[0], a[1], c[0], c[1])
	}
}

// fill shades the inside of a ring with the even-odd rule, one micro row at a time.
func (b *brailleBuf) fill(pts [][2]int) {
	if len(pts) < 3 {
		return
	}
	for y := 0; y < b.h*4; y++ {
		var xs []int
		for i := range pts {
			a, c := pts[i], pts[(i+1)%len(pts)]
			if a[1] == c[1] {
				continue
			}
			if (y >= a[1] && y < c[1]) || (y >= c[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(c[1]-a[1])
				xs = append(xs, a[0]+int(t*float64(c[0]-a[0])))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= min(xs[i+1], b.w*2-1); x++ {
				// checkerboard so the fill reads lighter than the edges
				if (x+y)%2 == 0 {
					b.setPixel(x, y)
				}
			}
		}
	}
}

// glyph returns the braille rune for a cell, or a space when it is empty.
func (b *brailleBuf) glyph(x, y int) rune {
	mask := b.m[y][x]
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
