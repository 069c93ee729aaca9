package flight

import (
	"math"

	"github.com/san-kum/flightsim/internal/geom"
)

const (
	frictionMinSpeed      = 0.1
	frictionMinHorizSq    = 0.01
	bounceThreshold       = -1.0
	bounceRestitution     = -0.1
	steeringMinInput      = 0.01
	steeringMinSpeed      = 0.2
	rightingTiltThreshold = math.Pi / 12
	rightingBlend         = 0.15
)

// Contact describes what the ground pass did this tick.
type Contact struct {
	Grounded    bool
	NormalForce float64
	Friction    geom.Vec3
	Bounced     bool
	Steered     bool
	Righted     bool
}

// TouchesGround reports whether the position projected one tick ahead is
// at or below ground level.
func TouchesGround(s State, dt float64, p Params) bool {
	return s.Position.Y()+s.Velocity.Y()*dt <= p.GroundLevel
}

// ResolveGround handles gear contact: pins Y to ground level, adds rolling
// resistance to the net force, applies the bounce rule to vertical
// velocity, steers with a world-space yaw and rights a tilted aircraft.
// It does not integrate position. When the projected position stays above
// ground it returns its inputs unchanged.
func ResolveGround(s State, f Forces, dt float64, p Params) (State, Forces, Contact) {
	if !TouchesGround(s, dt, p) {
		return s, f, Contact{}
	}

	c := Contact{Grounded: true}
	s.Position = geom.V(s.Position.X(), p.GroundLevel, s.Position.Z())

	up := s.Up()
	liftY := math.Max(0, up.Y()*f.LiftMagnitude)
	c.NormalForce = math.Max(0, p.Weight()-liftY)

	speed := s.Speed()
	if speed > frictionMinSpeed {
		horiz := geom.V(s.Velocity.X(), 0, s.Velocity.Z())
		if horiz.LenSqr() > frictionMinHorizSq {
			dir, _ := geom.NormalizeSafe(horiz, geom.Epsilon)
			c.Friction = dir.Mul(-p.RollingResistanceCoefficient * c.NormalForce)
			f.Net = f.Net.Add(c.Friction)
		}
	}

	vy := s.Velocity.Y()
	if vy < bounceThreshold {
		vy *= bounceRestitution
		c.Bounced = true
	} else {
		vy = 0
	}
	s.Velocity = geom.V(s.Velocity.X(), vy, s.Velocity.Z())

	if math.Abs(s.YawInput) > steeringMinInput && speed > steeringMinSpeed {
		rate := s.YawInput * p.YawSpeed * p.GroundSteeringFactor
		turn := geom.AxisAngle(geom.Up, rate*dt)
		s.Orientation = geom.Normalize(turn.Mul(s.Orientation))
		c.Steered = true
	}

	if geom.AngleBetween(s.Up(), geom.Up) > rightingTiltThreshold {
		s.Orientation = rightTowardLevel(s.Orientation)
		c.Righted = true
	}

	return s, f, c
}

// rightTowardLevel blends q part of the way toward a level attitude that
// keeps the current horizontal heading.
func rightTowardLevel(q geom.Quat) geom.Quat {
	fwd := q.Rotate(geom.Forward)
	level, ok := geom.NormalizeSafe(geom.V(fwd.X(), 0, fwd.Z()), geom.Epsilon)
	if !ok {
		level = geom.Forward
	}
	target := geom.LookRotation(level, geom.Up)
	return geom.Normalize(geom.Slerp(q, target, rightingBlend))
}
