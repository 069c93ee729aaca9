package metrics

import (
	"math"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/sim"
)

type MaxSpeed struct{ max float64 }

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }
func (m *MaxSpeed) Observe(x flight.State, _ flight.Controls, _ flight.Report, _, _ float64) {
	m.max = math.Max(m.max, x.Speed())
}
func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// MaxAltitude is the highest altitude above ground level.
type MaxAltitude struct {
	params flight.Params
	max    float64
}

func NewMaxAltitude(p flight.Params) *MaxAltitude { return &MaxAltitude{params: p} }

func (m *MaxAltitude) Name() string { return "max_altitude" }
func (m *MaxAltitude) Observe(x flight.State, _ flight.Controls, _ flight.Report, _, _ float64) {
	m.max = math.Max(m.max, x.Altitude(m.params))
}
func (m *MaxAltitude) Value() float64 { return m.max }
func (m *MaxAltitude) Reset()         { m.max = 0 }

// AirborneTime sums the ticks on which the ground resolver found no
// contact.
type AirborneTime struct{ total float64 }

func NewAirborneTime() *AirborneTime { return &AirborneTime{} }

func (a *AirborneTime) Name() string { return "airborne_time" }
func (a *AirborneTime) Observe(_ flight.State, _ flight.Controls, r flight.Report, _, dt float64) {
	if !r.Reset && !r.Contact.Grounded {
		a.total += dt
	}
}
func (a *AirborneTime) Value() float64 { return a.total }
func (a *AirborneTime) Reset()         { a.total = 0 }

// GroundContacts counts touchdowns: ticks where the aircraft is grounded
// after having been airborne. A run starting on the runway does not count.
type GroundContacts struct {
	count    int
	grounded bool
}

func NewGroundContacts() *GroundContacts { return &GroundContacts{grounded: true} }

func (g *GroundContacts) Name() string { return "ground_contacts" }
func (g *GroundContacts) Observe(_ flight.State, _ flight.Controls, r flight.Report, _, _ float64) {
	if r.Reset {
		g.grounded = true
		return
	}
	if r.Contact.Grounded && !g.grounded {
		g.count++
	}
	g.grounded = r.Contact.Grounded
}
func (g *GroundContacts) Value() float64 { return float64(g.count) }
func (g *GroundContacts) Reset() {
	g.count = 0
	g.grounded = true
}

type ObstacleHits struct{ count int }

func NewObstacleHits() *ObstacleHits { return &ObstacleHits{} }

func (o *ObstacleHits) Name() string { return "obstacle_hits" }
func (o *ObstacleHits) Observe(_ flight.State, _ flight.Controls, r flight.Report, _, _ float64) {
	o.count += len(r.Hits)
}
func (o *ObstacleHits) Value() float64 { return float64(o.count) }
func (o *ObstacleHits) Reset()         { o.count = 0 }

// StallTime sums the ticks on which lift was cut by the stall multiplier.
type StallTime struct{ total float64 }

func NewStallTime() *StallTime { return &StallTime{} }

func (s *StallTime) Name() string { return "stall_time" }
func (s *StallTime) Observe(_ flight.State, _ flight.Controls, r flight.Report, _, dt float64) {
	if r.Forces.Stalled {
		s.total += dt
	}
}
func (s *StallTime) Value() float64 { return s.total }
func (s *StallTime) Reset()         { s.total = 0 }

// Standard returns a fresh set of every flight metric.
func Standard(p flight.Params) []sim.Metric {
	return []sim.Metric{
		NewMaxSpeed(),
		NewMaxAltitude(p),
		NewAirborneTime(),
		NewGroundContacts(),
		NewObstacleHits(),
		NewStallTime(),
		NewControlEffort(),
		NewEnergy(p),
		NewEnergyPeak(p),
		NewStability(math.Pi / 6),
	}
}
