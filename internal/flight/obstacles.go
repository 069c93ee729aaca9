package flight

import "github.com/san-kum/flightsim/internal/geom"

// separationEpsilon is added to the push-out so the pair no longer overlaps.
const separationEpsilon = 0.01

// Obstacle is a static spherical collider.
type Obstacle struct {
	Position geom.Vec3 `yaml:"position" json:"position" msgpack:"position"`
	Radius   float64   `yaml:"radius" json:"radius" msgpack:"radius"`
}

// Field is the fixed obstacle set for a session. It is built once before
// the first tick and only read afterwards.
type Field []Obstacle

// Hit records one resolved obstacle contact.
type Hit struct {
	Index       int
	Normal      geom.Vec3
	Penetration float64
	Impulse     geom.Vec3
}

// ResolveObstacles pushes the aircraft out of every overlapping obstacle
// and reflects the approaching velocity component with the configured
// elasticity. Obstacles are resolved one at a time in field order.
// Coincident centers separate along world up.
func ResolveObstacles(s State, field Field, p Params) (State, []Hit) {
	var hits []Hit
	for i, ob := range field {
		offset := s.Position.Sub(ob.Position)
		sum := p.PlaneCollisionRadius + ob.Radius
		distSq := offset.LenSqr()
		if distSq >= sum*sum {
			continue
		}

		dist := offset.Len()
		normal, ok := geom.NormalizeSafe(offset, geom.Epsilon)
		if !ok {
			normal = geom.Up
			dist = 0
		}

		h := Hit{Index: i, Normal: normal, Penetration: sum - dist}
		s.Position = s.Position.Add(normal.Mul(h.Penetration + separationEpsilon))

		if vn := s.Velocity.Dot(normal); vn < 0 {
			h.Impulse = normal.Mul(-(1 + p.MountainCollisionElasticity) * vn)
			s.Velocity = geom.ClampLength(s.Velocity.Add(h.Impulse), p.MaxSpeed)
		}
		hits = append(hits, h)
	}
	return s, hits
}
