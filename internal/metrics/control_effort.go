package metrics

import (
	"math"

	"github.com/san-kum/flightsim/internal/flight"
)

// ControlEffort is the mean total stick deflection per tick.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(x flight.State, _ flight.Controls, _ flight.Report, _, _ float64) {
	c.sum += math.Abs(x.PitchInput) + math.Abs(x.RollInput) + math.Abs(x.YawInput)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
