package viz

import (
	"math"
	"strings"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
	"github.com/san-kum/flightsim/internal/world"
)

// Braille cells hold a 2x4 dot grid:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid drawn at braille dot resolution, so it is
// DotsX() by DotsY() addressable points.
type Canvas struct {
	Width, Height int
	cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) DotsX() int { return c.Width * 2 }
func (c *Canvas) DotsY() int { return c.Height * 4 }

// Set lights the dot at (x, y). Points off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotsX() || y >= c.DotsY() {
		return
	}
	c.cells[y/4][x/2] |= dotBits[y%4][x%2]
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x >= c.DotsX() || y >= c.DotsY() {
		return false
	}
	return c.cells[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBlank
		}
	}
}

// DrawLine plots a Bresenham line. Segments far outside the canvas are
// dropped whole rather than walked dot by dot.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	limX, limY := 4*c.DotsX(), 4*c.DotsY()
	if absInt(x0) > limX || absInt(x1) > limX || absInt(y0) > limY || absInt(y1) > limY {
		return
	}

	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle outlines a circle of radius r dots with a polygon whose
// segment count grows with the radius.
func (c *Canvas) DrawCircle(cx, cy int, r float64) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	n := int(math.Max(8, math.Min(48, r)))
	px, py := cx+int(math.Round(r)), cy
	for i := 1; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := cx + int(math.Round(r*math.Cos(a)))
		y := cy + int(math.Round(r*math.Sin(a)))
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MapView is a north-up plan view centered on a world point. Span is the
// width of the view in metres; -Z (heading 0) points up the screen.
type MapView struct {
	Center geom.Vec3
	Span   float64
}

// Project maps the horizontal position of p to canvas dots.
func (v MapView) Project(p geom.Vec3, c *Canvas) (int, int) {
	scale := float64(c.DotsX()) / v.Span
	x := (p.X()-v.Center.X())*scale + float64(c.DotsX())/2
	y := (p.Z()-v.Center.Z())*scale + float64(c.DotsY())/2
	return int(math.Round(x)), int(math.Round(y))
}

// DrawMap renders the mountains, the recent ground track and an arrow
// along the aircraft heading.
func DrawMap(c *Canvas, v MapView, s flight.State, w *world.World, trail []geom.Vec3) {
	scale := float64(c.DotsX()) / v.Span
	if w != nil {
		for _, m := range w.Mountains {
			x, y := v.Project(m.Base, c)
			c.DrawCircle(x, y, m.Radius*scale)
		}
	}
	for _, p := range trail {
		c.Set(v.Project(p, c))
	}

	x, y := v.Project(s.Position, c)
	h := s.Heading()
	const arrow = 5.0
	// screen up is world -Z, so the heading vector is (sin h, -cos h)
	nx := x + int(math.Round(arrow*math.Sin(h)))
	ny := y - int(math.Round(arrow*math.Cos(h)))
	lx := x + int(math.Round(arrow*0.6*math.Sin(h-2.5)))
	ly := y - int(math.Round(arrow*0.6*math.Cos(h-2.5)))
	rx := x + int(math.Round(arrow*0.6*math.Sin(h+2.5)))
	ry := y - int(math.Round(arrow*0.6*math.Cos(h+2.5)))
	c.DrawLine(lx, ly, nx, ny)
	c.DrawLine(nx, ny, rx, ry)
	c.DrawLine(x, y, nx, ny)
}
