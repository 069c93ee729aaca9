// Package viz is the terminal cockpit, built on Bubble Tea.
//
//   - [App]: scenario picker that hands off to a cockpit
//   - [Cockpit]: live flight with a chase view or plan map and a HUD
//   - [Canvas]: braille canvas shared by both views
//
// The cockpit measures the wall clock between frames and clamps it
// before stepping, so a stalled terminal never produces a huge tick.
//
// # Key Bindings
//
//	+ / -      throttle
//	w s ↑ ↓    pitch
//	a d ← →    roll
//	q e        yaw
//	r          reset
//	Space      pause
//	Tab        chase view / map
//	T          cycle themes
//	Esc        quit
package viz
