// Package automation runs scripted sequences of scenarios and Monte Carlo
// studies of start-condition dispersion.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/flightsim/internal/config"
	"github.com/san-kum/flightsim/internal/experiment"
	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/logging"
	"github.com/san-kum/flightsim/internal/sim"
)

// Batch is a named list of runs read from YAML.
type Batch struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []BatchStep `yaml:"steps"`
}

// BatchStep selects a scenario from a preset or a config file and
// overrides a few run settings. Zero values keep the scenario's own.
type BatchStep struct {
	Preset   string  `yaml:"preset"`
	Config   string  `yaml:"config"`
	Pilot    string  `yaml:"pilot"`
	Duration float64 `yaml:"duration"`
	Dt       float64 `yaml:"dt"`
	Seed     int64   `yaml:"seed"`
	SaveAs   string  `yaml:"save_as"`
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if len(b.Steps) == 0 {
		return nil, fmt.Errorf("automation: batch %s has no steps", path)
	}
	return &b, nil
}

// Resolve loads the step's scenario and applies its overrides.
func (s BatchStep) Resolve() (string, *config.Config, error) {
	var (
		cfg  *config.Config
		err  error
		name = s.Preset
	)
	switch {
	case s.Config != "":
		cfg, err = config.Load(s.Config)
		if name == "" {
			name = s.Config
		}
	case s.Preset != "":
		cfg, err = config.GetPreset(s.Preset)
	default:
		return "", nil, fmt.Errorf("automation: step needs a preset or a config")
	}
	if err != nil {
		return "", nil, err
	}

	if s.Pilot != "" {
		cfg.Scenario.Pilot = s.Pilot
	}
	if s.Duration > 0 {
		cfg.Run.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Run.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Run.Seed = s.Seed
	}
	if s.SaveAs != "" {
		name = s.SaveAs
	}
	return name, cfg, cfg.Validate()
}

// StepResult is one finished batch step, with everything needed to store
// it.
type StepResult struct {
	Name   string
	Config *config.Config
	Field  flight.Field
	Result *sim.Result
}

// RunBatch executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunBatch(ctx context.Context, b *Batch, log *slog.Logger) ([]StepResult, error) {
	if log == nil {
		log = logging.Discard()
	}
	results := make([]StepResult, 0, len(b.Steps))

	for i, step := range b.Steps {
		name, cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		log.Info("batch step", "batch", b.Name, "step", i+1, "of", len(b.Steps), "scenario", name)

		exp := experiment.New(name, cfg)
		exp.SetLogger(log)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Name: name, Config: cfg, Field: exp.Field(), Result: result})
	}
	return results, nil
}

// MonteCarloConfig perturbs the scenario start uniformly by up to the
// given half-widths.
type MonteCarloConfig struct {
	Trials   int
	Seed     int64
	Altitude float64
	Speed    float64
	Heading  float64
}

type MonteCarloResult struct {
	Trial  int
	Start  config.StartConfig
	Final  flight.State
	Hits   int
	Resets int
	// Survived is true when the flight never touched an obstacle.
	Survived bool
}

// RunMonteCarlo flies the scenario once per trial from a perturbed
// start. Trials share the world; only the start changes.
func RunMonteCarlo(ctx context.Context, name string, base *config.Config, mc MonteCarloConfig, log *slog.Logger) ([]MonteCarloResult, error) {
	if mc.Trials <= 0 {
		return nil, fmt.Errorf("automation: trials must be positive, got %d", mc.Trials)
	}
	if log == nil {
		log = logging.Discard()
	}
	rng := rand.New(rand.NewSource(mc.Seed))
	spread := func(w float64) float64 { return (rng.Float64()*2 - 1) * w }

	results := make([]MonteCarloResult, 0, mc.Trials)
	for trial := 0; trial < mc.Trials; trial++ {
		cfg := *base
		cfg.Scenario.Start.Altitude = max(0, base.Scenario.Start.Altitude+spread(mc.Altitude))
		cfg.Scenario.Start.Speed = max(0, base.Scenario.Start.Speed+spread(mc.Speed))
		cfg.Scenario.Start.Heading = base.Scenario.Start.Heading + spread(mc.Heading)

		exp := experiment.New(name, &cfg)
		if err := exp.Setup(); err != nil {
			return results, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, MonteCarloResult{
			Trial:    trial,
			Start:    cfg.Scenario.Start,
			Final:    result.Final(),
			Hits:     result.Hits,
			Resets:   result.Resets,
			Survived: result.Hits == 0,
		})
		if (trial+1)%10 == 0 {
			log.Info("monte carlo", "scenario", name, "done", trial+1, "of", mc.Trials)
		}
	}
	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (survived, crashed int) {
	for _, r := range results {
		if r.Survived {
			survived++
		} else {
			crashed++
		}
	}
	return
}
