// Package config loads and saves flight scenarios as YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
	"github.com/san-kum/flightsim/internal/pilot"
	"github.com/san-kum/flightsim/internal/sim"
	"github.com/san-kum/flightsim/internal/world"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 60.0
	DefaultPilot    = "autopilot"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Physics  flight.Params  `yaml:"physics"`
	World    world.Config   `yaml:"world"`
	Run      RunConfig      `yaml:"run"`
	Scenario ScenarioConfig `yaml:"scenario"`
}

type RunConfig struct {
	Dt            float64 `yaml:"dt"`
	MaxDt         float64 `yaml:"max_dt"`
	Duration      float64 `yaml:"duration"`
	FixedStep     float64 `yaml:"fixed_step"`
	Jitter        float64 `yaml:"jitter"`
	Seed          int64   `yaml:"seed"`
	ValidateState bool    `yaml:"validate_state"`
	RecordEvery   int     `yaml:"record_every"`
}

// StartConfig places the aircraft before the first tick. The zero value
// is the parked reset state.
type StartConfig struct {
	Altitude float64 `yaml:"altitude"`
	Speed    float64 `yaml:"speed"`
	Heading  float64 `yaml:"heading"`
	Throttle float64 `yaml:"throttle"`
}

type AutopilotConfig struct {
	ClimbPitch  float64 `yaml:"climb_pitch"`
	RotateSpeed float64 `yaml:"rotate_speed"`
	Kp          float64 `yaml:"kp"`
	Ki          float64 `yaml:"ki"`
	Kd          float64 `yaml:"kd"`
}

type ScenarioConfig struct {
	Pilot     string          `yaml:"pilot"`
	Start     StartConfig     `yaml:"start"`
	Script    []pilot.Segment `yaml:"script,omitempty"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: flight.DefaultParams(),
		World:   world.DefaultConfig(),
		Run: RunConfig{
			Dt:            DefaultDt,
			MaxDt:         flight.DefaultMaxDt,
			Duration:      DefaultDuration,
			ValidateState: true,
			RecordEvery:   1,
		},
		Scenario: ScenarioConfig{
			Pilot: DefaultPilot,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Sim().Validate(); err != nil {
		return err
	}
	if _, err := pilot.New(c.Scenario.Pilot, c.PilotOptions()); err != nil {
		return err
	}
	s := c.Scenario.Start
	switch {
	case s.Altitude < 0 || s.Altitude > c.Physics.MaxAltitude:
		return fmt.Errorf("%w: start altitude %g outside [0, %g]", ErrInvalidConfig, s.Altitude, c.Physics.MaxAltitude)
	case s.Speed < 0 || s.Speed > c.Physics.MaxSpeed:
		return fmt.Errorf("%w: start speed %g outside [0, %g]", ErrInvalidConfig, s.Speed, c.Physics.MaxSpeed)
	case s.Throttle < 0 || s.Throttle > 1:
		return fmt.Errorf("%w: start throttle %g outside [0, 1]", ErrInvalidConfig, s.Throttle)
	}
	for i, seg := range c.Scenario.Script {
		if seg.To < seg.From {
			return fmt.Errorf("%w: script segment %d ends before it starts", ErrInvalidConfig, i)
		}
	}
	return nil
}

func (c *Config) Sim() sim.Config {
	return sim.Config{
		Dt:            c.Run.Dt,
		MaxDt:         c.Run.MaxDt,
		Duration:      c.Run.Duration,
		FixedStep:     c.Run.FixedStep,
		Jitter:        c.Run.Jitter,
		Seed:          c.Run.Seed,
		ValidateState: c.Run.ValidateState,
		RecordEvery:   c.Run.RecordEvery,
	}
}

func (c *Config) PilotOptions() pilot.Options {
	a := c.Scenario.Autopilot
	return pilot.Options{
		Segments:    c.Scenario.Script,
		ClimbPitch:  a.ClimbPitch,
		RotateSpeed: a.RotateSpeed,
		Kp:          a.Kp,
		Ki:          a.Ki,
		Kd:          a.Kd,
	}
}

func (c *Config) NewPilot() (pilot.Pilot, error) {
	return pilot.New(c.Scenario.Pilot, c.PilotOptions())
}

// InitialState is the reset state moved to the start altitude, turned to
// the start heading (radians, 0 along -Z, positive toward +X) and flying
// level along it.
func (c *Config) InitialState() flight.State {
	s := flight.Reset(c.Physics)
	st := c.Scenario.Start

	s.Position = geom.V(0, c.Physics.GroundLevel+st.Altitude, 0)
	s.Orientation = geom.AxisAngle(geom.UnitY, -st.Heading)
	s.Velocity = s.Forward().Mul(st.Speed)
	s.Throttle = st.Throttle
	return s
}
