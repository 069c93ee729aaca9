package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/pilot"
)

var ErrUnknownParam = errors.New("analysis: unknown parameter")

var tunable = map[string]func(*flight.Params) *float64{
	"mass":               func(p *flight.Params) *float64 { return &p.Mass },
	"max_throttle_force": func(p *flight.Params) *float64 { return &p.MaxThrottleForce },
	"lift_coefficient":   func(p *flight.Params) *float64 { return &p.LiftCoefficient },
	"drag_coefficient":   func(p *flight.Params) *float64 { return &p.DragCoefficient },
	"min_speed_for_lift": func(p *flight.Params) *float64 { return &p.MinSpeedForLift },
	"stall_angle":        func(p *flight.Params) *float64 { return &p.StallAngleThresholdRad },
	"pitch_speed":        func(p *flight.Params) *float64 { return &p.PitchSpeed },
	"elasticity":         func(p *flight.Params) *float64 { return &p.MountainCollisionElasticity },
}

func TunableParams() []string {
	names := make([]string, 0, len(tunable))
	for name := range tunable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetParam assigns one tunable field of p by its config name.
func SetParam(p *flight.Params, name string, v float64) error {
	field, ok := tunable[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, TunableParams())
	}
	*field(p) = v
	return nil
}

// SweepPoint holds the distinct settled values seen for one parameter value.
type SweepPoint struct {
	Param  float64
	Values []float64
}

type SweepConfig struct {
	Param     string
	Min, Max  float64
	Steps     int
	Axis      string
	Dt        float64
	Transient float64
	Record    float64
	// Quantum merges recorded values closer than this.
	Quantum float64
}

// Sweep flies x0 once per parameter value, lets the flight settle for
// Transient seconds and then records the distinct values of the axis.
// A single value means the flight settled; a spread means it oscillates.
func Sweep(base flight.Params, field flight.Field, newPilot func() pilot.Pilot, x0 flight.State, cfg SweepConfig) ([]SweepPoint, error) {
	if _, ok := tunable[cfg.Param]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParam, cfg.Param)
	}
	measure, err := axis(cfg.Axis)
	if err != nil {
		return nil, err
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("analysis: sweep dt must be positive, got %g", cfg.Dt)
	}
	steps := cfg.Steps
	if steps <= 1 {
		steps = 2 // Prevent division by zero
	}
	quantum := cfg.Quantum
	if quantum <= 0 {
		quantum = 1e-3
	}
	paramStep := (cfg.Max - cfg.Min) / float64(steps-1)

	results := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		value := cfg.Min + float64(i)*paramStep
		p := base
		_ = SetParam(&p, cfg.Param, value)
		if err := p.Validate(); err != nil {
			return results, fmt.Errorf("analysis: sweep %s=%g: %w", cfg.Param, value, err)
		}

		pl := pilot.Pilot(pilot.None{})
		if newPilot != nil {
			pl = newPilot()
		}

		x := x0
		t := 0.0
		for t < cfg.Transient {
			x, _ = flight.Step(x, pl.Controls(x, t), cfg.Dt, p, field)
			t += cfg.Dt
		}

		values := make([]float64, 0, 100)
		seen := make(map[int64]bool)
		for t < cfg.Transient+cfg.Record {
			x, _ = flight.Step(x, pl.Controls(x, t), cfg.Dt, p, field)
			t += cfg.Dt

			val := measure(x)
			key := int64(val / quantum)
			if !seen[key] {
				seen[key] = true
				values = append(values, val)
			}
		}

		results = append(results, SweepPoint{Param: value, Values: values})
	}

	return results, nil
}

// SweepToASCII plots parameter value across and recorded values up.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !foundFirst {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := blankCanvas(width, height)
	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return canvasString(canvas)
}
