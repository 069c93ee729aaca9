// Package world builds the static obstacle field an aircraft flies
// through. Fields are generated once per session from a seed.
package world

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
)

// Config describes a field of cone-shaped mountains. Each mountain is
// approximated for collision by a sphere with the cone's base radius,
// centered half way up the cone.
type Config struct {
	Seed      int64   `yaml:"seed"`
	Mountains int     `yaml:"mountains"`
	Extent    float64 `yaml:"extent"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
	// Sink lowers every cone so its base sits below ground level.
	Sink float64 `yaml:"sink"`
	// Clearing keeps a circle around the origin free for takeoff. Zero
	// places cones anywhere in the extent, over the origin included.
	Clearing float64 `yaml:"clearing"`
}

func DefaultConfig() Config {
	return Config{
		Seed:      1,
		Mountains: 30,
		Extent:    8000,
		MinRadius: 80,
		MaxRadius: 380,
		MinHeight: 150,
		MaxHeight: 950,
		Sink:      2,
		Clearing:  600,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Mountains < 0:
		return fmt.Errorf("world: mountains must be non-negative, got %d", c.Mountains)
	case c.Mountains > 0 && c.Extent <= 0:
		return fmt.Errorf("world: extent must be positive, got %g", c.Extent)
	case c.MinRadius <= 0 || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("world: invalid radius range [%g, %g]", c.MinRadius, c.MaxRadius)
	case c.MinHeight <= 0 || c.MaxHeight < c.MinHeight:
		return fmt.Errorf("world: invalid height range [%g, %g]", c.MinHeight, c.MaxHeight)
	case c.Clearing < 0 || c.Clearing*2 >= c.Extent && c.Mountains > 0:
		return fmt.Errorf("world: clearing %g does not fit in extent %g", c.Clearing, c.Extent)
	}
	return nil
}

const maxAttemptsPerMountain = 1000

// Mountain keeps the visual dimensions alongside the collider so render
// collaborators can draw the cone.
type Mountain struct {
	Base   geom.Vec3
	Radius float64
	Height float64
}

func (m Mountain) Obstacle() flight.Obstacle {
	return flight.Obstacle{
		Position: m.Base.Add(geom.V(0, m.Height/2, 0)),
		Radius:   m.Radius,
	}
}

// World is the generated scenery. It is immutable after Generate.
type World struct {
	Mountains []Mountain
	Field     flight.Field
}

// Generate places c.Mountains cones uniformly over a square of side
// c.Extent centered on the origin. The same config always yields the same
// field.
func Generate(c Config) (*World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(c.Seed))
	w := &World{
		Mountains: make([]Mountain, 0, c.Mountains),
		Field:     make(flight.Field, 0, c.Mountains),
	}

	for attempts := 0; len(w.Mountains) < c.Mountains; attempts++ {
		if attempts > maxAttemptsPerMountain*c.Mountains {
			return nil, fmt.Errorf("world: placed %d of %d mountains outside the clearing", len(w.Mountains), c.Mountains)
		}
		radius := c.MinRadius + rng.Float64()*(c.MaxRadius-c.MinRadius)
		height := c.MinHeight + rng.Float64()*(c.MaxHeight-c.MinHeight)
		x := (rng.Float64() - 0.5) * c.Extent
		z := (rng.Float64() - 0.5) * c.Extent

		if c.Clearing > 0 && x*x+z*z < (c.Clearing+radius)*(c.Clearing+radius) {
			continue
		}

		m := Mountain{
			Base:   geom.V(x, -c.Sink, z),
			Radius: radius,
			Height: height,
		}
		w.Mountains = append(w.Mountains, m)
		w.Field = append(w.Field, m.Obstacle())
	}
	return w, nil
}

// Nearest returns the index of the obstacle whose surface is closest to p
// and the clearance to it, or -1 for an empty field.
func (w *World) Nearest(p geom.Vec3) (int, float64) {
	best, clearance := -1, 0.0
	for i, ob := range w.Field {
		d := p.Sub(ob.Position).Len() - ob.Radius
		if best < 0 || d < clearance {
			best, clearance = i, d
		}
	}
	return best, clearance
}
