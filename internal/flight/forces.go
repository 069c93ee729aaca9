package flight

import (
	"math"

	"github.com/san-kum/flightsim/internal/geom"
)

const (
	liftOnsetRatio     = 0.7 // lift is evaluated above this fraction of MinSpeedForLift
	stallSpeedRatio    = 1.5 // stall only below this multiple of MinSpeedForLift
	gearDragSpeedRatio = 1.2
	gearDragAltitude   = 10.0
	gearDragFactor     = 1.5
	minDragSpeed       = 0.1
)

// Forces is the force accumulator for one tick.
type Forces struct {
	Net     geom.Vec3
	Thrust  geom.Vec3
	Lift    geom.Vec3
	Drag    geom.Vec3
	Gravity geom.Vec3

	// LiftMagnitude is needed by ResolveGround for the normal force.
	LiftMagnitude float64
	// Pitch is the nose angle relative to the horizon the AoA terms used.
	Pitch   float64
	Stalled bool
}

// ComputeForces evaluates thrust, lift, drag and gravity for the given
// orientation. s.Orientation must already reflect this tick's rotation.
func ComputeForces(s State, p Params) Forces {
	forward := s.Forward()
	up := s.Up()
	speed := s.Speed()
	airborne := s.airborneForForces(p)
	pitch := math.Asin(geom.Clamp(forward.Y(), -1, 1))

	f := Forces{
		Thrust:  forward.Mul(s.Throttle * p.MaxThrottleForce),
		Gravity: geom.V(0, -p.Mass*p.Gravity, 0),
		Pitch:   pitch,
	}

	if speed > p.MinSpeedForLift*liftOnsetRatio {
		aoa := 1 + geom.Clamp(pitch*p.AoALiftGain, p.AoALiftReductionMax, p.AoALiftBonusMax)
		if pitch > p.StallAngleThresholdRad && speed < p.MinSpeedForLift*stallSpeedRatio {
			aoa *= p.StallLiftMultiplier
			f.Stalled = true
		}

		lift := speed * speed * p.LiftCoefficient * aoa
		if !airborne && speed < p.MinSpeedForLift {
			lift *= speed / p.MinSpeedForLift
		}
		f.LiftMagnitude = math.Max(0, lift)
		f.Lift = up.Mul(f.LiftMagnitude)
	}

	if speed > minDragSpeed {
		aoa := 1 + geom.Clamp(pitch*p.AoADragGain, 0, p.AoADragBonusMax)

		gear := 1.0
		if !airborne || (s.Position.Y() < p.GroundLevel+gearDragAltitude && speed < p.MinSpeedForLift*gearDragSpeedRatio) {
			gear = gearDragFactor
		}

		mag := speed * speed * p.DragCoefficient * aoa * gear
		f.Drag = s.Velocity.Mul(-mag / speed)
	}

	f.Net = f.Thrust.Add(f.Lift).Add(f.Drag).Add(f.Gravity)
	return f
}
