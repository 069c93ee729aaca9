// Package geom provides the vector and quaternion primitives used by the
// flight core. Types alias mgl64 so callers get its full method set; the
// helpers here add the guarded operations the simulation relies on.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type (
	Vec3 = mgl64.Vec3
	Quat = mgl64.Quat
)

// Epsilon is the minimum magnitude accepted by NormalizeSafe callers that
// don't pick their own threshold.
const Epsilon = 1e-9

var (
	Zero    = Vec3{0, 0, 0}
	UnitX   = Vec3{1, 0, 0}
	UnitY   = Vec3{0, 1, 0}
	UnitZ   = Vec3{0, 0, 1}
	Up      = UnitY
	Forward = Vec3{0, 0, -1}
)

func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func Identity() Quat { return mgl64.QuatIdent() }

func Clamp(x, lo, hi float64) float64 { return mgl64.Clamp(x, lo, hi) }

// NormalizeSafe returns v/|v| and true, or the zero vector and false when
// |v| is below eps.
func NormalizeSafe(v Vec3, eps float64) (Vec3, bool) {
	l := v.Len()
	if l < eps || math.IsNaN(l) {
		return Zero, false
	}
	return v.Mul(1 / l), true
}

// ClampLength rescales v so that |v| <= max, keeping its direction.
func ClampLength(v Vec3, max float64) Vec3 {
	l2 := v.LenSqr()
	if l2 <= max*max || l2 == 0 {
		return v
	}
	return v.Mul(max / math.Sqrt(l2))
}

// AxisAngle builds the rotation of angle radians around a unit axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	return mgl64.QuatRotate(angle, axis)
}

// Normalize returns q scaled to unit length. A zero quaternion becomes the
// identity.
func Normalize(q Quat) Quat {
	l := q.Len()
	if l == 0 || math.IsNaN(l) {
		return Identity()
	}
	return Quat{W: q.W / l, V: q.V.Mul(1 / l)}
}

// Slerp interpolates from a toward b along the shorter arc.
func Slerp(a, b Quat, t float64) Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t)
}

// LookRotation returns the orientation that maps the local forward axis
// (0,0,-1) onto forward and keeps local up as close to up as possible.
// forward must be non-zero and not parallel to up.
func LookRotation(forward, up Vec3) Quat {
	z := forward.Mul(-1).Normalize()
	x := up.Cross(z)
	if x.LenSqr() < Epsilon {
		// forward is parallel to up: nudge z so the basis stays defined
		if math.Abs(up.Z()) == 1 {
			z = Vec3{z.X() + 1e-4, z.Y(), z.Z()}
		} else {
			z = Vec3{z.X(), z.Y(), z.Z() + 1e-4}
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	m := mgl64.Mat3FromCols(x, y, z)
	return Normalize(mgl64.Mat4ToQuat(m.Mat4()))
}

// AngleBetween returns the unsigned angle between a and b in radians, or 0
// when either is zero.
func AngleBetween(a, b Vec3) float64 {
	d := math.Sqrt(a.LenSqr() * b.LenSqr())
	if d == 0 {
		return 0
	}
	return math.Acos(Clamp(a.Dot(b)/d, -1, 1))
}

func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func QuatIsFinite(q Quat) bool {
	return !math.IsNaN(q.W) && !math.IsInf(q.W, 0) && IsFinite(q.V)
}
