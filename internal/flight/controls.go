package flight

import "github.com/san-kum/flightsim/internal/geom"

// Controls is the per-tick input from a pilot. ThrottleDelta is a request
// direction (-1 close, 0 hold, 1 open) integrated at Params.ThrottleRate.
// Axis values are clamped to [-1, 1].
type Controls struct {
	ThrottleDelta float64
	Pitch         float64
	Roll          float64
	Yaw           float64
	Reset         bool
}

// ApplyControls integrates the throttle request and latches the axis
// inputs onto the state. A reset request replaces the state entirely.
func ApplyControls(s State, c Controls, dt float64, p Params) State {
	if c.Reset {
		return Reset(p)
	}

	delta := geom.Clamp(c.ThrottleDelta, -1, 1)
	s.Throttle = geom.Clamp(s.Throttle+delta*p.ThrottleRate*dt, 0, 1)

	s.PitchInput = geom.Clamp(c.Pitch, -1, 1)
	s.RollInput = geom.Clamp(c.Roll, -1, 1)
	s.YawInput = geom.Clamp(c.Yaw, -1, 1)
	return s
}
