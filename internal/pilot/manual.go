package pilot

import (
	"strings"

	"github.com/san-kum/flightsim/internal/flight"
)

// DefaultHold is how long a key press keeps its axis deflected. Terminals
// report presses and repeats but no releases, so a press is treated as a
// short hold that key repeat keeps extending.
const DefaultHold = 0.15

type binding struct {
	throttle, pitch, roll, yaw float64
}

var bindings = map[string]binding{
	"+": {throttle: 1}, "=": {throttle: 1}, "shift+up": {throttle: 1},
	"-": {throttle: -1}, "_": {throttle: -1}, "shift+down": {throttle: -1},
	"w": {pitch: -1}, "up": {pitch: -1},
	"s": {pitch: 1}, "down": {pitch: 1},
	"a": {roll: 1}, "left": {roll: 1},
	"d": {roll: -1}, "right": {roll: -1},
	"q": {yaw: 1},
	"e": {yaw: -1},
}

// Manual maps keyboard presses to controls.
type Manual struct {
	Hold    float64
	pressed map[string]float64
	reset   bool
}

func NewManual() *Manual {
	return &Manual{Hold: DefaultHold, pressed: make(map[string]float64)}
}

// Press records a key press at time t. It reports whether the key is
// bound to a flight control.
func (m *Manual) Press(key string, t float64) bool {
	key = strings.ToLower(key)
	if key == "r" {
		m.reset = true
		return true
	}
	if _, ok := bindings[key]; !ok {
		return false
	}
	m.pressed[key] = t
	return true
}

// Release drops a key immediately, for front ends that see key-up events.
func (m *Manual) Release(key string) {
	delete(m.pressed, strings.ToLower(key))
}

func (m *Manual) Controls(_ flight.State, t float64) flight.Controls {
	var c flight.Controls
	for key, at := range m.pressed {
		if t-at > m.Hold {
			delete(m.pressed, key)
			continue
		}
		b := bindings[key]
		c.ThrottleDelta += b.throttle
		c.Pitch += b.pitch
		c.Roll += b.roll
		c.Yaw += b.yaw
	}
	if m.reset {
		c.Reset = true
		m.reset = false
	}
	return c
}

func (m *Manual) Reset() {
	m.pressed = make(map[string]float64)
	m.reset = false
}
