package flight

import "github.com/san-kum/flightsim/internal/geom"

// UpdateOrientation applies the pilot's angular rates for one tick.
// Rotations are about the aircraft's local axes and compose by right
// multiplication in a fixed order: pitch (X), roll (Z), then yaw (Y).
// Yaw only applies in the air; on the ground ResolveGround steers instead.
func UpdateOrientation(s State, dt float64, p Params) geom.Quat {
	q := s.Orientation
	q = q.Mul(geom.AxisAngle(geom.UnitX, s.PitchInput*p.PitchSpeed*dt))
	q = q.Mul(geom.AxisAngle(geom.UnitZ, s.RollInput*p.RollSpeed*dt))
	if s.airborneForRotation(p) {
		q = q.Mul(geom.AxisAngle(geom.UnitY, s.YawInput*p.YawSpeed*dt))
	}
	return geom.Normalize(q)
}
