// Package export renders stored runs as standalone SVG images.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/storage"
)

type point struct{ X, Y float64 }

// frame maps data coordinates onto an image with 10% padding. flipY puts
// larger Y values toward the top.
type frame struct {
	minX, minY, scaleX, scaleY float64
	width, height              int
	flipY                      bool
}

func newFrame(pts []point, width, height int, flipY, square bool) frame {
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	rangeX, rangeY := math.Max(maxX-minX, 1), math.Max(maxY-minY, 1)
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	f := frame{
		minX: minX, minY: minY,
		scaleX: float64(width) / rangeX, scaleY: float64(height) / rangeY,
		width: width, height: height, flipY: flipY,
	}
	if square {
		s := math.Min(f.scaleX, f.scaleY)
		f.scaleX, f.scaleY = s, s
	}
	return f
}

func (f frame) at(p point) (float64, float64) {
	x := (p.X - f.minX) * f.scaleX
	y := (p.Y - f.minY) * f.scaleY
	if f.flipY {
		y = float64(f.height) - y
	}
	return x, y
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

func path(sb *strings.Builder, f frame, pts []point, stroke string) {
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
	for i, p := range pts {
		x, y := f.at(p)
		if i == 0 {
			fmt.Fprintf(sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>` + "\n")
}

// TrackSVG draws the plan view of a run: the ground track from start
// (green) to end (red) over the obstacles near it. North (-Z) is up.
func TrackSVG(t *storage.Trajectory, width, height int) (string, error) {
	states, err := t.FlightStates()
	if err != nil {
		return "", err
	}
	if len(states) < 2 {
		return "", fmt.Errorf("export: need at least 2 states, got %d", len(states))
	}

	pts := make([]point, len(states))
	for i, s := range states {
		pts[i] = point{s.Position.X(), s.Position.Z()}
	}
	f := newFrame(pts, width, height, false, true)

	var sb strings.Builder
	header(&sb, width, height)

	sb.WriteString(`<g fill="none" stroke="#665544">` + "\n")
	for _, ob := range t.Obstacles {
		x, y := f.at(point{ob.Position.X(), ob.Position.Z()})
		r := ob.Radius * f.scaleX
		if x+r < 0 || y+r < 0 || x-r > float64(width) || y-r > float64(height) {
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", x, y, r)
	}
	sb.WriteString("</g>\n")

	path(&sb, f, pts, "#00ccff")
	marker(&sb, f, pts[0], "#00ff88")
	marker(&sb, f, pts[len(pts)-1], "#ff4444")
	sb.WriteString("</svg>")
	return sb.String(), nil
}

// ProfileSVG plots altitude above ground against time.
func ProfileSVG(t *storage.Trajectory, p flight.Params, width, height int) (string, error) {
	states, err := t.FlightStates()
	if err != nil {
		return "", err
	}
	if len(states) < 2 || len(t.Times) != len(states) {
		return "", fmt.Errorf("export: need at least 2 timed states, got %d", len(states))
	}

	pts := make([]point, len(states))
	for i, s := range states {
		pts[i] = point{t.Times[i], s.Altitude(p)}
	}
	f := newFrame(pts, width, height, true, false)

	var sb strings.Builder
	header(&sb, width, height)
	gx0, gy := f.at(point{pts[0].X, 0})
	gx1, _ := f.at(point{pts[len(pts)-1].X, 0})
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466"/>`+"\n", gx0, gy, gx1, gy)
	path(&sb, f, pts, "#00ff88")
	sb.WriteString("</svg>")
	return sb.String(), nil
}

func marker(sb *strings.Builder, f frame, p point, fill string) {
	x, y := f.at(p)
	fmt.Fprintf(sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`+"\n", x, y, fill)
}
