package raster

import (
	"math"

	"github.com/taigrr/rasty/pkg/color"
)

// Point is a single rasterizer input vertex: screen-space (x,y), depth, and
// color, per §4.8/§4.9's (x,y,z,color) tuples.
type Point struct {
	X, Y  float64
	Z     float64
	Color color.Color
}

// DrawLine rasterizes a Bresenham line with linear z and RGB interpolation
// per §4.8. If a point (in screen coordinates, after undoing any steep
// transpose) falls out of bounds past the right or either vertical bound,
// the remainder of the line is abandoned early.
func (fb *Framebuffer) DrawLine(p0, p1 Point) {
	x0, y0 := int(math.Round(p0.X)), int(math.Round(p0.Y))
	x1, y1 := int(math.Round(p1.X)), int(math.Round(p1.Y))
	z0, z1 := p0.Z, p1.Z
	c0, c1 := p0.Color, p1.Color

	steep := false
	if abs(x0-x1) < abs(y0-y1) {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		steep = true
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
		z0, z1 = z1, z0
		c0, c1 = c1, c0
	}

	dx := x1 - x0
	if dx == 0 {
		fb.setLinePixel(x0, y0, z0, c0, steep)
		return
	}
	dy := y1 - y0
	dzDx := (z1 - z0) / float64(dx)
	drDx := (float64(c1.R) - float64(c0.R)) / float64(dx)
	dgDx := (float64(c1.G) - float64(c0.G)) / float64(dx)
	dbDx := (float64(c1.B) - float64(c0.B)) / float64(dx)
	daDx := (float64(c1.A) - float64(c0.A)) / float64(dx)

	dyerror2 := abs(dy) * 2
	yerror2 := 0
	y := y0
	z := z0
	r, g, b, a := float64(c0.R), float64(c0.G), float64(c0.B), float64(c0.A)

	ystep := 1
	if y1 < y0 {
		ystep = -1
	}

	for x := x0; x <= x1; x++ {
		cur := color.RGBA(channel(r), channel(g), channel(b), channel(a))
		px, py := x, y
		if steep {
			px, py = y, x
		}
		res := fb.SetPixel(px, py, cur, z)
		if res == Bounds && !fb.lineContinues(px, py) {
			return
		}

		yerror2 += dyerror2
		if yerror2 > dx {
			y += ystep
			yerror2 -= dx * 2
		}
		z += dzDx
		r += drDx
		g += dgDx
		b += dbDx
		a += daDx
	}
}

func (fb *Framebuffer) setLinePixel(x, y int, z float64, c color.Color, steep bool) {
	if steep {
		fb.SetPixel(y, x, c, z)
		return
	}
	fb.SetPixel(x, y, c, z)
}

// lineContinues reports whether the remainder of the line could still land
// in bounds, per §4.8's "abort the rest of the line" short-circuit: past
// the right edge, or past either vertical bound, nothing further can be
// on-screen.
func (fb *Framebuffer) lineContinues(x, y int) bool {
	if x > fb.width {
		return false
	}
	if y > fb.height || y < 0 {
		return false
	}
	return true
}

func channel(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DrawWireTriangle draws three lines at a constant color, per §4.8.
func (fb *Framebuffer) DrawWireTriangle(p0, p1, p2 Point, c color.Color) {
	p0.Color, p1.Color, p2.Color = c, c, c
	fb.DrawLine(p0, p1)
	fb.DrawLine(p1, p2)
	fb.DrawLine(p2, p0)
}

// FillTriangle rasterizes a barycentric-filled triangle per §4.9: every
// pixel whose center satisfies 0.99 <= u+v+w <= 1.01 is colored and
// depth-tested by linear interpolation of the three corner attributes.
func (fb *Framebuffer) FillTriangle(a, b, c Point) {
	minX := int(math.Floor(math.Min(a.X, math.Min(b.X, c.X))))
	maxX := int(math.Ceil(math.Max(a.X, math.Max(b.X, c.X))))
	minY := int(math.Floor(math.Min(a.Y, math.Min(b.Y, c.Y))))
	maxY := int(math.Ceil(math.Max(a.Y, math.Max(b.Y, c.Y))))

	areaABC := triArea(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if areaABC == 0 {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x), float64(y)

			u := triArea(px, py, a.X, a.Y, c.X, c.Y) / areaABC
			v := triArea(px, py, a.X, a.Y, b.X, b.Y) / areaABC
			w := triArea(px, py, c.X, c.Y, b.X, b.Y) / areaABC

			sum := u + v + w
			if sum < 0.99 || sum > 1.01 {
				continue
			}

			depth := a.Z*w + b.Z*u + c.Z*v
			col := a.Color.Scale(w).Add(b.Color.Scale(u)).Add(c.Color.Scale(v))
			fb.SetPixel(x, y, col, depth)
		}
	}
}

// triArea returns |PA x PC|/2 for P=(px,py), A=(ax,ay), C=(cx,cy), matching
// the §4.9 u = |PA×PC|/2/Area construction (and likewise for v, w with the
// other vertex pairs).
func triArea(px, py, ax, ay, cx, cy float64) float64 {
	return math.Abs((ax-px)*(cy-py)-(cx-px)*(ay-py)) / 2
}
