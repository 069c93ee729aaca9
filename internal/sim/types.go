package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/flightsim/internal/flight"
)

var (
	ErrInvalidConfig = errors.New("sim: invalid run configuration")
	ErrDiverged      = errors.New("sim: state diverged")
)

// Metric accumulates a scalar over a run. Observe sees the state after
// each tick together with the controls and diagnostics that produced it.
type Metric interface {
	Name() string
	Observe(s flight.State, c flight.Controls, r flight.Report, t, dt float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s flight.State, c flight.Controls, r flight.Report, t float64)
}

// Config controls how frames are turned into physics ticks. Each frame
// lasts Dt, perturbed by up to ±Jitter·Dt, and is clamped to MaxDt before
// it reaches the physics. With FixedStep > 0 the clamped frame time feeds
// an accumulator drained in FixedStep ticks instead.
type Config struct {
	Dt            float64
	MaxDt         float64
	Duration      float64
	FixedStep     float64
	Jitter        float64
	Seed          int64
	ValidateState bool
	// RecordEvery keeps one state in N; 0 or 1 keeps all of them.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		MaxDt:         flight.DefaultMaxDt,
		Duration:      60,
		ValidateState: true,
		RecordEvery:   1,
	}
}

func (c Config) Validate() error {
	switch {
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	case !(c.MaxDt > 0):
		return fmt.Errorf("%w: max_dt must be positive, got %g", ErrInvalidConfig, c.MaxDt)
	case !(c.Duration > 0):
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	case c.FixedStep < 0:
		return fmt.Errorf("%w: fixed_step must be non-negative, got %g", ErrInvalidConfig, c.FixedStep)
	case c.Jitter < 0 || c.Jitter >= 1:
		return fmt.Errorf("%w: jitter must be in [0,1), got %g", ErrInvalidConfig, c.Jitter)
	case c.RecordEvery < 0:
		return fmt.Errorf("%w: record_every must be non-negative, got %d", ErrInvalidConfig, c.RecordEvery)
	}
	return nil
}

type Result struct {
	States     []flight.State
	Controls   []flight.Controls
	Times      []float64
	Metrics    map[string]float64
	Errors     []error
	StepsTaken int
	Frames     int
	Resets     int
	Hits       int
}

// Final returns the last recorded state.
func (r *Result) Final() flight.State {
	return r.States[len(r.States)-1]
}

// Vectors flattens the recorded states for storage and plotting.
func (r *Result) Vectors() [][]float64 {
	out := make([][]float64, len(r.States))
	for i, s := range r.States {
		out[i] = s.Vector()
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return ErrDiverged }
