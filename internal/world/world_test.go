package world

import (
	"math"
	"reflect"
	"testing"

	"github.com/san-kum/flightsim/internal/geom"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce the same world")
	}

	cfg.Seed = 2
	c, _ := Generate(cfg)
	if reflect.DeepEqual(a.Field, c.Field) {
		t.Error("different seeds should produce different worlds")
	}
}

func TestGenerateBounds(t *testing.T) {
	cfg := DefaultConfig()
	w, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(w.Field) != cfg.Mountains || len(w.Mountains) != cfg.Mountains {
		t.Fatalf("expected %d obstacles, got %d", cfg.Mountains, len(w.Field))
	}

	for i, m := range w.Mountains {
		if m.Radius < cfg.MinRadius || m.Radius > cfg.MaxRadius {
			t.Errorf("mountain %d radius %f out of range", i, m.Radius)
		}
		if m.Height < cfg.MinHeight || m.Height > cfg.MaxHeight {
			t.Errorf("mountain %d height %f out of range", i, m.Height)
		}
		half := cfg.Extent / 2
		if math.Abs(m.Base.X()) > half || math.Abs(m.Base.Z()) > half {
			t.Errorf("mountain %d at %v outside extent", i, m.Base)
		}
		if math.Hypot(m.Base.X(), m.Base.Z()) < cfg.Clearing+m.Radius {
			t.Errorf("mountain %d intrudes on the clearing", i)
		}

		ob := w.Field[i]
		if ob.Radius != m.Radius {
			t.Errorf("collider radius %f, want base radius %f", ob.Radius, m.Radius)
		}
		if want := m.Height/2 - cfg.Sink; math.Abs(ob.Position.Y()-want) > 1e-9 {
			t.Errorf("collider center y %f, want %f", ob.Position.Y(), want)
		}
	}
}

func TestGenerateWithoutClearing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clearing = 0
	cfg.Extent = 1000
	cfg.MinRadius, cfg.MaxRadius = 400, 400

	w, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(w.Mountains) != cfg.Mountains {
		t.Fatalf("expected %d mountains, got %d", cfg.Mountains, len(w.Mountains))
	}
	covered := false
	for _, m := range w.Mountains {
		if math.Hypot(m.Base.X(), m.Base.Z()) < m.Radius {
			covered = true
		}
	}
	if !covered {
		t.Error("without a clearing some cone should cover the origin")
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative count", func(c *Config) { c.Mountains = -1 }},
		{"zero extent", func(c *Config) { c.Extent = 0 }},
		{"inverted radius", func(c *Config) { c.MinRadius, c.MaxRadius = 300, 100 }},
		{"zero height", func(c *Config) { c.MinHeight = 0 }},
		{"clearing too wide", func(c *Config) { c.Clearing = c.Extent }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := Generate(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mountains = 0
	w, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if idx, _ := w.Nearest(geom.Zero); idx != -1 {
		t.Errorf("empty world nearest = %d, want -1", idx)
	}
}

func TestNearest(t *testing.T) {
	w := &World{}
	for _, m := range []Mountain{
		{Base: geom.V(1000, 0, 0), Radius: 100, Height: 200},
		{Base: geom.V(0, 0, -500), Radius: 50, Height: 200},
	} {
		w.Mountains = append(w.Mountains, m)
		w.Field = append(w.Field, m.Obstacle())
	}

	idx, clearance := w.Nearest(geom.V(0, 100, 0))
	if idx != 1 {
		t.Errorf("nearest = %d, want 1", idx)
	}
	if math.Abs(clearance-450) > 1e-9 {
		t.Errorf("clearance = %f, want 450", clearance)
	}
}
