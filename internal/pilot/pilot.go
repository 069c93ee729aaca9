// Package pilot provides the input collaborators that turn a situation
// into per-tick flight controls.
package pilot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/flightsim/internal/flight"
)

var ErrUnknownPilot = errors.New("pilot: unknown pilot")

// Pilot produces the controls for the tick starting at time t.
type Pilot interface {
	Controls(s flight.State, t float64) flight.Controls
}

// Resetter is implemented by pilots that keep internal state between
// ticks and must forget it when the aircraft is reset.
type Resetter interface {
	Reset()
}

// Options carries the settings a named pilot may need.
type Options struct {
	Segments    []Segment
	ClimbPitch  float64
	RotateSpeed float64
	Kp, Ki, Kd  float64
}

var registry = map[string]func(Options) Pilot{
	"none":      func(Options) Pilot { return None{} },
	"manual":    func(Options) Pilot { return NewManual() },
	"script":    func(o Options) Pilot { return NewScript(o.Segments) },
	"autopilot": func(o Options) Pilot { return NewAutopilot(o) },
}

// New returns the named pilot.
func New(name string, opts Options) (Pilot, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPilot, name, Names())
	}
	return fn(opts), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
