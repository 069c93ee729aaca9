package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/flightsim/internal/flight"
)

// Axes are the scalar views of a state that portraits and sweeps plot.
var Axes = map[string]func(flight.State) float64{
	"x":              func(s flight.State) float64 { return s.Position.X() },
	"y":              func(s flight.State) float64 { return s.Position.Y() },
	"z":              func(s flight.State) float64 { return s.Position.Z() },
	"speed":          flight.State.Speed,
	"vertical_speed": func(s flight.State) float64 { return s.Velocity.Y() },
	"pitch":          flight.State.Pitch,
	"bank":           flight.State.Bank,
	"heading":        flight.State.Heading,
	"throttle":       func(s flight.State) float64 { return s.Throttle },
}

func AxisNames() []string {
	names := make([]string, 0, len(Axes))
	for name := range Axes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func axis(name string) (func(flight.State) float64, error) {
	f, ok := Axes[name]
	if !ok {
		return nil, fmt.Errorf("analysis: unknown axis %q (available: %v)", name, AxisNames())
	}
	return f, nil
}

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XAxis, YAxis string
	Points       []struct{ X, Y float64 }
}

// GeneratePhasePortrait projects recorded states onto two axes.
func GeneratePhasePortrait(states []flight.State, xAxis, yAxis string) (*PhasePortrait2D, error) {
	fx, err := axis(xAxis)
	if err != nil {
		return nil, err
	}
	fy, err := axis(yAxis)
	if err != nil {
		return nil, err
	}

	portrait := &PhasePortrait2D{
		XAxis:  xAxis,
		YAxis:  yAxis,
		Points: make([]struct{ X, Y float64 }, 0, len(states)),
	}
	for _, s := range states {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: fx(s), Y: fy(s)})
	}
	return portrait, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := blankCanvas(width, height)

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	return canvasString(canvas)
}

func blankCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}
	return canvas
}

func canvasString(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PoincareSection records points when a trajectory crosses a level
type PoincareSection struct {
	Times  []float64
	Points []struct{ X, Y float64 }
}

// GeneratePoincareSection samples the x and y axes, interpolated between
// recorded states, wherever the cross axis rises through threshold.
// Crossing vertical_speed at 0 picks out the troughs of a phugoid.
func GeneratePoincareSection(
	states []flight.State,
	times []float64,
	cross string,
	threshold float64,
	xAxis, yAxis string,
) (*PoincareSection, error) {
	if len(states) != len(times) {
		return nil, fmt.Errorf("analysis: %d states but %d times", len(states), len(times))
	}
	fc, err := axis(cross)
	if err != nil {
		return nil, err
	}
	fx, err := axis(xAxis)
	if err != nil {
		return nil, err
	}
	fy, err := axis(yAxis)
	if err != nil {
		return nil, err
	}

	section := &PoincareSection{
		Points: make([]struct{ X, Y float64 }, 0),
	}

	for i := 1; i < len(states); i++ {
		prev, curr := fc(states[i-1]), fc(states[i])
		if !(prev < threshold && curr >= threshold) {
			continue
		}
		frac := (threshold - prev) / (curr - prev)
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		lerp := func(f func(flight.State) float64) float64 {
			a, b := f(states[i-1]), f(states[i])
			return a + frac*(b-a)
		}
		section.Times = append(section.Times, times[i-1]+frac*(times[i]-times[i-1]))
		section.Points = append(section.Points, struct{ X, Y float64 }{X: lerp(fx), Y: lerp(fy)})
	}

	return section, nil
}

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}

	portrait := &PhasePortrait2D{Points: section.Points}
	return PhasePortraitToASCII(portrait, width, height)
}
