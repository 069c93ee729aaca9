package metrics

import (
	"math"

	"github.com/san-kum/flightsim/internal/flight"
)

// SpecificEnergy is the mechanical energy per unit weight, in metres:
// height above ground plus v²/2g.
func SpecificEnergy(x flight.State, p flight.Params) float64 {
	v := x.Speed()
	return x.Position.Y() - p.GroundLevel + v*v/(2*p.Gravity)
}

// Energy is the mean mechanical energy (kinetic plus potential above
// ground) over the run, in joules.
type Energy struct {
	name        string
	params      flight.Params
	samples     int
	totalEnergy float64
}

func NewEnergy(p flight.Params) *Energy {
	return &Energy{
		name:   "energy",
		params: p,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x flight.State, _ flight.Controls, _ flight.Report, _, _ float64) {
	e.totalEnergy += e.params.Weight() * SpecificEnergy(x, e.params)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyPeak is the highest specific energy reached. A glide converts
// height into speed without raising it; thrust and lift do.
type EnergyPeak struct {
	name   string
	params flight.Params
	peak   float64
}

func NewEnergyPeak(p flight.Params) *EnergyPeak {
	return &EnergyPeak{name: "energy_peak", params: p}
}

func (e *EnergyPeak) Name() string { return e.name }

func (e *EnergyPeak) Observe(x flight.State, _ flight.Controls, _ flight.Report, _, _ float64) {
	e.peak = math.Max(e.peak, SpecificEnergy(x, e.params))
}

func (e *EnergyPeak) Value() float64 { return e.peak }

func (e *EnergyPeak) Reset() { e.peak = 0 }
