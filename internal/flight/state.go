package flight

import (
	"fmt"
	"math"

	"github.com/san-kum/flightsim/internal/geom"
)

// Margins above ground level used by the airborne tests. Rotation and
// force evaluation use different margins.
const (
	orientationAirborneMargin = 0.1
	forceAirborneMargin       = 0.05
)

// State is the mutable aircraft state advanced by Step.
type State struct {
	Position    geom.Vec3
	Velocity    geom.Vec3
	Orientation geom.Quat
	Throttle    float64

	// Recomputed from Controls every tick.
	PitchInput float64
	RollInput  float64
	YawInput   float64
}

// Reset returns the canonical initial state: parked at ground level,
// at rest, level, throttle closed.
func Reset(p Params) State {
	return State{
		Position:    geom.V(0, p.GroundLevel, 0),
		Velocity:    geom.Zero,
		Orientation: geom.Identity(),
	}
}

func (s State) Speed() float64 { return s.Velocity.Len() }

// Altitude is the display height above ground, never negative.
func (s State) Altitude(p Params) float64 {
	return math.Max(0, s.Position.Y()-p.GroundLevel)
}

// Forward is the world-space nose direction.
func (s State) Forward() geom.Vec3 { return s.Orientation.Rotate(geom.Forward) }

// Up is the world-space direction of the aircraft's local up axis.
func (s State) Up() geom.Vec3 { return s.Orientation.Rotate(geom.Up) }

// Pitch is the nose angle relative to the horizon, positive nose up.
func (s State) Pitch() float64 {
	return math.Asin(geom.Clamp(s.Forward().Y(), -1, 1))
}

// Bank is the roll angle of the wings relative to the horizon, positive
// when the right wing is raised.
func (s State) Bank() float64 {
	right := s.Orientation.Rotate(geom.UnitX)
	return math.Asin(geom.Clamp(right.Y(), -1, 1))
}

// Heading is the compass angle of the horizontal nose direction in
// radians, 0 along -Z and increasing toward +X.
func (s State) Heading() float64 {
	f := s.Forward()
	return math.Atan2(f.X(), -f.Z())
}

func (s State) airborneForRotation(p Params) bool {
	return s.Position.Y() > p.GroundLevel+orientationAirborneMargin
}

func (s State) airborneForForces(p Params) bool {
	return s.Position.Y() > p.GroundLevel+forceAirborneMargin
}

// Validate reports ErrInvalidState if any component is NaN or Inf.
func (s State) Validate() error {
	switch {
	case !geom.IsFinite(s.Position):
		return fmt.Errorf("%w: position %v", ErrInvalidState, s.Position)
	case !geom.IsFinite(s.Velocity):
		return fmt.Errorf("%w: velocity %v", ErrInvalidState, s.Velocity)
	case !geom.QuatIsFinite(s.Orientation):
		return fmt.Errorf("%w: orientation %v", ErrInvalidState, s.Orientation)
	case math.IsNaN(s.Throttle) || math.IsInf(s.Throttle, 0):
		return fmt.Errorf("%w: throttle %v", ErrInvalidState, s.Throttle)
	}
	return nil
}

// Vector flattens the state for storage and plotting:
// x, y, z, vx, vy, vz, qw, qx, qy, qz, throttle.
func (s State) Vector() []float64 {
	q := s.Orientation
	return []float64{
		s.Position.X(), s.Position.Y(), s.Position.Z(),
		s.Velocity.X(), s.Velocity.Y(), s.Velocity.Z(),
		q.W, q.V.X(), q.V.Y(), q.V.Z(),
		s.Throttle,
	}
}

// VectorLabels names the entries returned by Vector.
var VectorLabels = []string{"x", "y", "z", "vx", "vy", "vz", "qw", "qx", "qy", "qz", "throttle"}

// FromVector is the inverse of Vector. Control inputs are left at zero.
func FromVector(v []float64) (State, error) {
	if len(v) != len(VectorLabels) {
		return State{}, fmt.Errorf("flight: state vector has %d entries, want %d", len(v), len(VectorLabels))
	}
	return State{
		Position:    geom.V(v[0], v[1], v[2]),
		Velocity:    geom.V(v[3], v[4], v[5]),
		Orientation: geom.Quat{W: v[6], V: geom.V(v[7], v[8], v[9])},
		Throttle:    v[10],
	}, nil
}
