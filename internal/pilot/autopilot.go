package pilot

import (
	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
)

const (
	defaultClimbPitch  = 0.15
	defaultRotateSpeed = 32
	defaultKp          = 2.0
	defaultKi          = 0.1
	defaultKd          = 0.4
)

// Autopilot flies a full-power takeoff: it holds the wings level, waits
// for rotation speed and then holds a climb pitch below the stall angle.
type Autopilot struct {
	ClimbPitch  float64
	RotateSpeed float64
	pitch       *PID
	bank        *PID
}

func NewAutopilot(o Options) *Autopilot {
	if o.ClimbPitch == 0 {
		o.ClimbPitch = defaultClimbPitch
	}
	if o.RotateSpeed == 0 {
		o.RotateSpeed = defaultRotateSpeed
	}
	if o.Kp == 0 && o.Ki == 0 && o.Kd == 0 {
		o.Kp, o.Ki, o.Kd = defaultKp, defaultKi, defaultKd
	}
	return &Autopilot{
		ClimbPitch:  o.ClimbPitch,
		RotateSpeed: o.RotateSpeed,
		pitch:       NewPID(o.Kp, o.Ki, o.Kd),
		bank:        NewPID(o.Kp, o.Ki, o.Kd),
	}
}

func (a *Autopilot) Controls(s flight.State, t float64) flight.Controls {
	c := flight.Controls{ThrottleDelta: 1}
	c.Roll = geom.Clamp(a.bank.Update(-s.Bank(), t), -1, 1)
	if s.Speed() < a.RotateSpeed {
		return c
	}
	c.Pitch = geom.Clamp(a.pitch.Update(a.ClimbPitch-s.Pitch(), t), -1, 1)
	return c
}

func (a *Autopilot) Reset() {
	a.pitch.Reset()
	a.bank.Reset()
}
