package metrics

import (
	"math"

	"github.com/san-kum/flightsim/internal/flight"
)

// Stability is the fraction of airborne ticks flown with both pitch and
// bank inside threshold radians. Runs that never leave the ground score 1.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x flight.State, _ flight.Controls, r flight.Report, _, _ float64) {
	if r.Contact.Grounded || r.Reset {
		return
	}
	s.samples++
	if math.Abs(x.Pitch()) > s.threshold || math.Abs(x.Bank()) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
