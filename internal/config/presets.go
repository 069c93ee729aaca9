package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/flightsim/internal/pilot"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

var presets = map[string]func() *Config{
	// full power from the runway with the autopilot flying the climb
	"takeoff": func() *Config {
		cfg := DefaultConfig()
		cfg.Run.Duration = 60
		return cfg
	},
	// cruise entry, throttle closed and the nose pulled past the stall angle
	"stall": func() *Config {
		cfg := DefaultConfig()
		cfg.World.Mountains = 0
		cfg.Run.Duration = 30
		cfg.Scenario.Pilot = "script"
		cfg.Scenario.Start = StartConfig{Altitude: 300, Speed: 45}
		cfg.Scenario.Script = []pilot.Segment{
			{From: 0, To: 4, Pitch: 1},
			{From: 4, To: 12},
			{From: 12, To: 30, Throttle: 1},
		}
		return cfg
	},
	// trimmed off equilibrium so the phugoid shows up in the altitude trace
	"climb": func() *Config {
		cfg := DefaultConfig()
		cfg.World.Mountains = 0
		cfg.Run.Duration = 240
		cfg.Run.RecordEvery = 6
		cfg.Scenario.Pilot = "none"
		cfg.Scenario.Start = StartConfig{Altitude: 150, Speed: 40, Throttle: 0.6}
		return cfg
	},
	// low and fast through a dense field, banking left then right
	"canyon": func() *Config {
		cfg := DefaultConfig()
		cfg.World.Mountains = 80
		cfg.World.Extent = 4000
		cfg.World.Clearing = 300
		cfg.World.Seed = 7
		cfg.Run.Duration = 45
		cfg.Scenario.Pilot = "script"
		cfg.Scenario.Start = StartConfig{Altitude: 60, Speed: 70, Throttle: 0.8}
		cfg.Scenario.Script = []pilot.Segment{
			{From: 5, To: 6, Roll: 1},
			{From: 6, To: 10, Pitch: 0.4},
			{From: 10, To: 12, Roll: -1},
			{From: 12, To: 16, Pitch: 0.4},
			{From: 16, To: 17, Roll: 1},
		}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named scenario.
func GetPreset(name string) (*Config, error) {
	fn, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
