// Package flight implements the per-tick flight dynamics of a single
// powered aircraft.
//
// A tick is a pure transformation of [State] given [Controls], the
// elapsed time and read-only [Params] and [Field]:
//
//	state, report := flight.Step(state, controls, dt, params, field)
//
// The stages run in a fixed order and the order is part of the contract:
//
//   - [UpdateOrientation]: local pitch, then roll, then yaw (airborne only)
//   - [ComputeForces]: thrust, lift, drag, gravity
//   - [ResolveGround]: only when the projected position reaches the ground
//   - [Integrate]: velocity, speed cap, position, altitude cap
//   - [ResolveObstacles]: sphere push-out and elastic impulse
//
// # Thread Safety
//
// State is owned by a single caller. Params and Field are never mutated
// and may be shared freely.
package flight
