package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
)

func airborne(y float64) flight.State {
	s := flight.Reset(flight.DefaultParams())
	s.Position = geom.V(0, y, 0)
	return s
}

var (
	onGround = flight.Report{Contact: flight.Contact{Grounded: true}}
	inAir    = flight.Report{}
)

func TestMaxSpeedAndAltitude(t *testing.T) {
	p := flight.DefaultParams()
	speed := NewMaxSpeed()
	alt := NewMaxAltitude(p)

	for _, v := range []float64{10, 40, 25} {
		s := airborne(p.GroundLevel + v)
		s.Velocity = geom.V(0, 0, -v)
		speed.Observe(s, flight.Controls{}, inAir, 0, 0.1)
		alt.Observe(s, flight.Controls{}, inAir, 0, 0.1)
	}

	if speed.Value() != 40 {
		t.Errorf("expected max speed 40, got %f", speed.Value())
	}
	if math.Abs(alt.Value()-40) > 1e-12 {
		t.Errorf("expected max altitude 40, got %f", alt.Value())
	}

	speed.Reset()
	alt.Reset()
	if speed.Value() != 0 || alt.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestAirborneTimeAndContacts(t *testing.T) {
	air := NewAirborneTime()
	contacts := NewGroundContacts()

	reports := []flight.Report{onGround, onGround, inAir, inAir, onGround, inAir, onGround, {Reset: true}, onGround}
	for _, r := range reports {
		air.Observe(flight.State{}, flight.Controls{}, r, 0, 0.5)
		contacts.Observe(flight.State{}, flight.Controls{}, r, 0, 0.5)
	}

	if air.Value() != 1.5 {
		t.Errorf("expected 1.5s airborne, got %f", air.Value())
	}
	if contacts.Value() != 2 {
		t.Errorf("expected 2 touchdowns, got %f", contacts.Value())
	}

	contacts.Reset()
	contacts.Observe(flight.State{}, flight.Controls{}, onGround, 0, 0.5)
	if contacts.Value() != 0 {
		t.Error("starting on the ground is not a touchdown")
	}
}

func TestObstacleHitsAndStallTime(t *testing.T) {
	hits := NewObstacleHits()
	stall := NewStallTime()

	r := flight.Report{Hits: make([]flight.Hit, 2), Forces: flight.Forces{Stalled: true}}
	hits.Observe(flight.State{}, flight.Controls{}, r, 0, 0.25)
	stall.Observe(flight.State{}, flight.Controls{}, r, 0, 0.25)
	hits.Observe(flight.State{}, flight.Controls{}, inAir, 0, 0.25)
	stall.Observe(flight.State{}, flight.Controls{}, inAir, 0, 0.25)

	if hits.Value() != 2 {
		t.Errorf("expected 2 hits, got %f", hits.Value())
	}
	if stall.Value() != 0.25 {
		t.Errorf("expected 0.25s stalled, got %f", stall.Value())
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	if m.Value() != 0 {
		t.Error("expected zero with no samples")
	}

	s := flight.State{PitchInput: 1, RollInput: -1}
	m.Observe(s, flight.Controls{}, inAir, 0, 0.1)
	m.Observe(flight.State{}, flight.Controls{}, inAir, 0, 0.1)

	if m.Value() != 1 {
		t.Errorf("expected mean effort 1, got %f", m.Value())
	}
}

func TestEnergy(t *testing.T) {
	p := flight.DefaultParams()
	m := NewEnergy(p)

	s := airborne(p.GroundLevel + 100)
	s.Velocity = geom.V(0, 0, -20)
	m.Observe(s, flight.Controls{}, inAir, 0, 0.1)

	expected := 0.5*p.Mass*400 + p.Mass*p.Gravity*100
	if math.Abs(m.Value()-expected) > 1e-6 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyPeak(t *testing.T) {
	p := flight.DefaultParams()
	m := NewEnergyPeak(p)

	high := airborne(p.GroundLevel + 50)
	fast := airborne(p.GroundLevel)
	fast.Velocity = geom.V(0, 0, -10)

	m.Observe(fast, flight.Controls{}, inAir, 0, 0.1)
	m.Observe(high, flight.Controls{}, inAir, 0, 0.1)

	if math.Abs(m.Value()-50) > 1e-9 {
		t.Errorf("expected peak 50m, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(0.2)
	if m.Value() != 1 {
		t.Error("expected full stability with no airborne samples")
	}

	level := airborne(100)
	banked := airborne(100)
	banked.Orientation = geom.AxisAngle(geom.UnitZ, 0.5)

	m.Observe(level, flight.Controls{}, inAir, 0, 0.1)
	m.Observe(banked, flight.Controls{}, inAir, 0, 0.1)
	m.Observe(banked, flight.Controls{}, onGround, 0, 0.1)

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestStandard(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Standard(flight.DefaultParams()) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %q", m.Name())
		}
		seen[m.Name()] = true
	}
	for _, name := range []string{"max_speed", "max_altitude", "airborne_time", "ground_contacts", "obstacle_hits", "stall_time"} {
		if !seen[name] {
			t.Errorf("missing metric %q", name)
		}
	}
}
