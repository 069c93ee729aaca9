package flight

import "github.com/san-kum/flightsim/internal/geom"

// Integrate advances velocity and position by one explicit Euler step
// from the net force. Speed is capped before the position update. While
// grounded only X and Z move; Y was pinned by ResolveGround. Crossing the
// ceiling clamps Y and stops a climb, but a descent is left alone.
func Integrate(s State, net geom.Vec3, grounded bool, dt float64, p Params) State {
	accel := net.Mul(1 / p.Mass)
	s.Velocity = geom.ClampLength(s.Velocity.Add(accel.Mul(dt)), p.MaxSpeed)

	if grounded {
		s.Position = s.Position.Add(geom.V(s.Velocity.X()*dt, 0, s.Velocity.Z()*dt))
	} else {
		s.Position = s.Position.Add(s.Velocity.Mul(dt))
	}

	return clampCeiling(s, p)
}

func clampCeiling(s State, p Params) State {
	if ceiling := p.Ceiling(); s.Position.Y() > ceiling {
		s.Position = geom.V(s.Position.X(), ceiling, s.Position.Z())
		if s.Velocity.Y() > 0 {
			s.Velocity = geom.V(s.Velocity.X(), 0, s.Velocity.Z())
		}
	}
	return s
}
