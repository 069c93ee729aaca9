package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/logging"
	"github.com/san-kum/flightsim/internal/pilot"
)

// ClampDt bounds a frame interval to [0, max]. Non-finite or negative
// intervals become zero so a bad clock never reaches the physics.
func ClampDt(dt, max float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return math.Min(dt, max)
}

type Simulator struct {
	params    flight.Params
	field     flight.Field
	pilot     pilot.Pilot
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(p flight.Params, field flight.Field, pl pilot.Pilot) *Simulator {
	if pl == nil {
		pl = pilot.None{}
	}
	return &Simulator{
		params:    p,
		field:     field,
		pilot:     pl,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logging.Discard(),
	}
}

func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *slog.Logger) { s.log = l }
func (s *Simulator) Params() flight.Params    { return s.params }

// Run advances x0 for cfg.Duration seconds of frame time. It stops early
// when ctx is done, returning the partial result with ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 flight.State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.params.Validate(); err != nil {
		return nil, err
	}
	if cfg.ValidateState {
		if err := x0.Validate(); err != nil {
			return nil, fmt.Errorf("sim: initial state: %w", err)
		}
	}

	log := logging.FromContext(ctx, s.log)
	frames := int(math.Ceil(cfg.Duration/cfg.Dt - 1e-9))
	every := max(cfg.RecordEvery, 1)

	result := &Result{
		States:   make([]flight.State, 0, frames/every+2),
		Controls: make([]flight.Controls, 0, frames/every+1),
		Times:    make([]float64, 0, frames/every+2),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	if r, ok := s.pilot.(pilot.Resetter); ok {
		r.Reset()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	x := x0
	t := 0.0
	acc := 0.0

	result.States = append(result.States, x)
	result.Times = append(result.Times, t)

	log.Info("run started", "frames", frames, "dt", cfg.Dt, "fixed_step", cfg.FixedStep, "obstacles", len(s.field))

	tick := func(dt float64) error {
		c := s.pilot.Controls(x, t)
		next, report := flight.Step(x, c, dt, s.params, s.field)
		t += dt

		if cfg.ValidateState {
			if err := next.Validate(); err != nil {
				return SimError{Time: t, Step: result.StepsTaken, Message: err.Error()}
			}
		}
		x = next
		result.StepsTaken++

		if report.Reset {
			result.Resets++
			log.Debug("aircraft reset", "t", t)
		}
		if len(report.Hits) > 0 {
			result.Hits += len(report.Hits)
			log.Debug("obstacle contact", "t", t, "hits", len(report.Hits), "speed", x.Speed())
		}

		for _, m := range s.metrics {
			m.Observe(x, c, report, t, dt)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, c, report, t)
		}

		if result.StepsTaken%every == 0 {
			result.States = append(result.States, x)
			result.Controls = append(result.Controls, c)
			result.Times = append(result.Times, t)
		}
		return nil
	}

	var runErr error
loop:
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		default:
		}

		frame := cfg.Dt
		if cfg.Jitter > 0 {
			frame *= 1 + cfg.Jitter*(2*rng.Float64()-1)
		}
		dt := ClampDt(frame, cfg.MaxDt)
		if dt < frame {
			log.Debug("frame clamped", "frame", frame, "dt", dt)
		}
		result.Frames++

		if cfg.FixedStep <= 0 {
			if err := tick(dt); err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
			continue
		}

		acc += dt
		for acc >= cfg.FixedStep {
			acc -= cfg.FixedStep
			if err := tick(cfg.FixedStep); err != nil {
				result.Errors = append(result.Errors, err)
				break loop
			}
		}
	}

	if last := result.Times[len(result.Times)-1]; last != t && len(result.Errors) == 0 {
		result.States = append(result.States, x)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.Info("run finished",
		"steps", result.StepsTaken,
		"t", t,
		"altitude", x.Altitude(s.params),
		"speed", x.Speed(),
		"hits", result.Hits,
		"errors", len(result.Errors))

	return result, runErr
}
