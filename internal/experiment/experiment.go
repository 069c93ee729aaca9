// Package experiment wires a loaded scenario into a runnable simulator:
// it generates the world, builds the pilot and attaches the metrics.
package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/flightsim/internal/config"
	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/logging"
	"github.com/san-kum/flightsim/internal/metrics"
	"github.com/san-kum/flightsim/internal/sim"
	"github.com/san-kum/flightsim/internal/world"
)

type Experiment struct {
	Name      string
	cfg       *config.Config
	world     *world.World
	simulator *sim.Simulator
	log       *slog.Logger
}

func New(name string, cfg *config.Config) *Experiment {
	return &Experiment{Name: name, cfg: cfg, log: logging.Discard()}
}

func (e *Experiment) SetLogger(l *slog.Logger) { e.log = l }

// Setup validates the scenario and builds the world and simulator. It
// must be called before Run.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	w, err := world.Generate(e.cfg.World)
	if err != nil {
		return err
	}
	e.world = w

	s, err := e.newSimulator()
	if err != nil {
		return err
	}
	e.simulator = s
	return nil
}

func (e *Experiment) newSimulator() (*sim.Simulator, error) {
	pl, err := e.cfg.NewPilot()
	if err != nil {
		return nil, err
	}
	s := sim.New(e.cfg.Physics, e.world.Field, pl)
	for _, m := range metrics.Standard(e.cfg.Physics) {
		s.AddMetric(m)
	}
	s.SetLogger(e.log.With("scenario", e.Name, "pilot", e.cfg.Scenario.Pilot))
	return s, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.InitialState(), e.cfg.Sim())
}

// Ensemble runs the scenario n times in parallel, one jitter seed each.
func (e *Experiment) Ensemble(ctx context.Context, n int) ([]*sim.Result, error) {
	if e.world == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	build := func(int) (*sim.Simulator, error) { return e.newSimulator() }
	return sim.NewEnsemble(build, n, e.cfg.Run.Seed).Run(ctx, e.cfg.InitialState(), e.cfg.Sim())
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Field() flight.Field {
	if e.world == nil {
		return nil
	}
	return e.world.Field
}

func (e *Experiment) World() *world.World { return e.world }
