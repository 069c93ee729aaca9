package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
	"github.com/san-kum/flightsim/internal/world"
)

const (
	chaseFOV   = math.Pi / 3
	chaseNear  = 0.5
	chaseFar   = 6000
	gridStep   = 100.0
	gridRadius = 1500.0
	coneSides  = 10
)

var (
	chaseOffset = geom.V(0, 8, 22)
	chaseLook   = geom.V(0, 2, -15)
)

// Camera projects world points through a perspective view.
type Camera struct {
	Eye, Target, Up geom.Vec3
	FOV, Near, Far  float64
}

// NewChaseCamera places the camera behind and above the aircraft. The
// camera rolls with the wings so the horizon tilts in a bank.
func NewChaseCamera(s flight.State) Camera {
	eye := s.Position.Add(s.Orientation.Rotate(chaseOffset))
	target := s.Position.Add(s.Orientation.Rotate(chaseLook))
	return Camera{Eye: eye, Target: target, Up: s.Up(), FOV: chaseFOV, Near: chaseNear, Far: chaseFar}
}

func (c Camera) matrix(aspect float64) mgl64.Mat4 {
	view := mgl64.LookAtV(c.Eye, c.Target, c.Up)
	proj := mgl64.Perspective(c.FOV, aspect, c.Near, c.Far)
	return proj.Mul4(view)
}

// Project maps p to canvas dots. ok is false for points behind the near
// plane.
func (c Camera) Project(p geom.Vec3, cv *Canvas) (x, y int, ok bool) {
	w, h := float64(cv.DotsX()), float64(cv.DotsY())
	return project(c.matrix(w/h), p, w, h, c.Near)
}

func project(m mgl64.Mat4, p geom.Vec3, w, h, near float64) (int, int, bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip.W() < near {
		return 0, 0, false
	}
	nx, ny := clip.X()/clip.W(), clip.Y()/clip.W()
	return int(math.Round((nx + 1) / 2 * w)), int(math.Round((1 - ny) / 2 * h)), true
}

type Edge struct {
	A, B geom.Vec3
}

// Wireframe is a set of world-space line segments.
type Wireframe struct{ Edges []Edge }

func (w *Wireframe) Add(a, b geom.Vec3) { w.Edges = append(w.Edges, Edge{a, b}) }

// AddGround lays a square grid on the terrain plane around center,
// snapped to the grid spacing so it doesn't swim as the aircraft moves.
func (w *Wireframe) AddGround(center geom.Vec3) {
	x0 := math.Floor((center.X()-gridRadius)/gridStep) * gridStep
	z0 := math.Floor((center.Z()-gridRadius)/gridStep) * gridStep
	x1, z1 := x0+2*gridRadius, z0+2*gridRadius
	for x := x0; x <= x1; x += gridStep {
		w.Add(geom.V(x, 0, z0), geom.V(x, 0, z1))
	}
	for z := z0; z <= z1; z += gridStep {
		w.Add(geom.V(x0, 0, z), geom.V(x1, 0, z))
	}
}

// AddMountain draws the cone as a base ring with ribs to the peak.
func (w *Wireframe) AddMountain(m world.Mountain) {
	peak := m.Base.Add(geom.V(0, m.Height, 0))
	prev := m.Base.Add(geom.V(m.Radius, 0, 0))
	for i := 1; i <= coneSides; i++ {
		a := 2 * math.Pi * float64(i) / coneSides
		pt := m.Base.Add(geom.V(m.Radius*math.Cos(a), 0, m.Radius*math.Sin(a)))
		w.Add(prev, pt)
		if i%2 == 0 {
			w.Add(pt, peak)
		}
		prev = pt
	}
}

var airframe = []Edge{
	{geom.V(0, 0, -4), geom.V(0, 0, 4)},
	{geom.V(-5, 0, -0.5), geom.V(5, 0, -0.5)},
	{geom.V(-2, 0, 3.5), geom.V(2, 0, 3.5)},
	{geom.V(0, 0, 3.5), geom.V(0, 1.5, 4)},
}

// AddAircraft draws a stick-figure airframe at the aircraft's pose.
func (w *Wireframe) AddAircraft(s flight.State) {
	for _, e := range airframe {
		w.Add(s.Position.Add(s.Orientation.Rotate(e.A)), s.Position.Add(s.Orientation.Rotate(e.B)))
	}
}

// Scene builds the chase view wireframe: ground grid, the mountains in
// view range and the aircraft.
func Scene(s flight.State, w *world.World) *Wireframe {
	wf := &Wireframe{}
	wf.AddGround(s.Position)
	if w != nil {
		for _, m := range w.Mountains {
			if m.Base.Sub(s.Position).Len()-m.Radius < chaseFar {
				wf.AddMountain(m)
			}
		}
	}
	wf.AddAircraft(s)
	return wf
}

// Render3D draws every edge with both ends in front of the camera.
func Render3D(c *Canvas, w *Wireframe, cam Camera) {
	if c == nil || w == nil {
		return
	}
	dw, dh := float64(c.DotsX()), float64(c.DotsY())
	m := cam.matrix(dw / dh)
	for _, e := range w.Edges {
		x0, y0, ok0 := project(m, e.A, dw, dh, cam.Near)
		x1, y1, ok1 := project(m, e.B, dw, dh, cam.Near)
		if !ok0 || !ok1 {
			continue
		}
		c.DrawLine(x0, y0, x1, y1)
	}
}
