package flight

import (
	"math"
	"testing"

	"github.com/san-kum/flightsim/internal/geom"
)

func TestResolveGroundNotTriggered(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Position = geom.V(0, 20, 0)
	s.Velocity = geom.V(0, -10, 0)
	f := ComputeForces(s, p)

	got, gf, c := ResolveGround(s, f, 0.1, p)
	if c.Grounded {
		t.Fatal("projected position is above ground, expected no contact")
	}
	if got != s || gf != f {
		t.Error("state and forces should be returned unchanged")
	}
}

func TestResolveGroundBounce(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name    string
		vy      float64
		want    float64
		bounced bool
	}{
		{"hard landing", -5, 0.5, true},
		{"just over threshold", -1.01, 0.101, true},
		{"soft landing", -0.9, 0, false},
		{"at threshold", -1.0, 0, false},
		{"resting", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reset(p)
			s.Velocity = geom.V(0, tt.vy, 0)
			got, _, c := ResolveGround(s, ComputeForces(s, p), 0.05, p)
			if !c.Grounded {
				t.Fatal("expected ground contact")
			}
			if c.Bounced != tt.bounced {
				t.Errorf("bounced = %v, want %v", c.Bounced, tt.bounced)
			}
			if !approx(got.Velocity.Y(), tt.want, 1e-12) {
				t.Errorf("vy = %f, want %f", got.Velocity.Y(), tt.want)
			}
			if got.Position.Y() != p.GroundLevel {
				t.Errorf("y = %f, want ground level %f", got.Position.Y(), p.GroundLevel)
			}
		})
	}
}

func TestResolveGroundClampsPenetration(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Position = geom.V(3, p.GroundLevel-0.4, 7)

	got, _, c := ResolveGround(s, ComputeForces(s, p), 0.05, p)
	if !c.Grounded || got.Position != geom.V(3, p.GroundLevel, 7) {
		t.Errorf("position = %v, want pinned to ground at (3, %f, 7)", got.Position, p.GroundLevel)
	}
}

func TestResolveGroundRollingResistance(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Velocity = geom.V(3, -0.5, -4)
	f := ComputeForces(s, p)

	_, gf, c := ResolveGround(s, f, 0.05, p)

	wantMag := p.RollingResistanceCoefficient * p.Weight()
	if !approx(c.NormalForce, p.Weight(), 1e-9) {
		t.Errorf("normal force = %f, want %f", c.NormalForce, p.Weight())
	}
	if !approx(c.Friction.Len(), wantMag, 1e-9) {
		t.Errorf("friction = %f, want %f", c.Friction.Len(), wantMag)
	}
	if c.Friction.Y() != 0 {
		t.Errorf("friction must be horizontal, got %v", c.Friction)
	}
	if c.Friction.Dot(geom.V(3, 0, -4)) >= 0 {
		t.Errorf("friction %v must oppose horizontal motion", c.Friction)
	}
	if gf.Net != f.Net.Add(c.Friction) {
		t.Errorf("net force should include friction")
	}
}

func TestResolveGroundLiftUnloadsGear(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Velocity = geom.V(0, 0, -40)
	f := ComputeForces(s, p)

	_, _, c := ResolveGround(s, f, 0.05, p)

	if f.LiftMagnitude <= p.Weight() {
		t.Fatalf("test expects lift above weight, got %f", f.LiftMagnitude)
	}
	if c.NormalForce != 0 || c.Friction != geom.Zero {
		t.Errorf("gear should carry no load, normal=%f friction=%v", c.NormalForce, c.Friction)
	}
}

func TestResolveGroundSkipsFrictionWhenVertical(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Velocity = geom.V(0.05, -0.8, 0)

	_, _, c := ResolveGround(s, ComputeForces(s, p), 0.05, p)
	if c.Friction != geom.Zero {
		t.Errorf("horizontal speed below threshold should skip friction, got %v", c.Friction)
	}
}

func TestResolveGroundSteering(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Velocity = geom.V(0, 0, -5)
	s.YawInput = 1

	got, _, c := ResolveGround(s, ComputeForces(s, p), 0.1, p)

	if !c.Steered {
		t.Fatal("expected ground steering")
	}
	want := p.YawSpeed * p.GroundSteeringFactor * 0.1
	if !approx(math.Abs(got.Heading()), want, 1e-9) {
		t.Errorf("heading change = %f, want %f", got.Heading(), want)
	}
	if !approx(got.Up().Y(), 1, 1e-12) {
		t.Errorf("world-space yaw should keep the wings level, up = %v", got.Up())
	}

	s.Velocity = geom.V(0, 0, -0.1)
	_, _, c = ResolveGround(s, ComputeForces(s, p), 0.1, p)
	if c.Steered {
		t.Error("no steering expected below the minimum taxi speed")
	}
}

func TestResolveGroundSelfRighting(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name string
		q    geom.Quat
	}{
		{"knife edge", geom.AxisAngle(geom.UnitZ, math.Pi/2)},
		{"inverted", geom.AxisAngle(geom.UnitZ, math.Pi)},
		{"nose down", geom.AxisAngle(geom.UnitX, -math.Pi/2)},
		{"tilted heading east", geom.AxisAngle(geom.UnitY, -math.Pi/2).Mul(geom.AxisAngle(geom.UnitZ, 0.6))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reset(p)
			s.Orientation = tt.q
			before := geom.AngleBetween(s.Up(), geom.Up)

			for i := 0; i < 60; i++ {
				var c Contact
				s, _, c = ResolveGround(s, ComputeForces(s, p), 0.05, p)
				if i == 0 && !c.Righted {
					t.Fatal("expected righting on the first pass")
				}
				if !approx(s.Orientation.Len(), 1, 1e-9) {
					t.Fatalf("orientation not unit: %f", s.Orientation.Len())
				}
			}

			after := geom.AngleBetween(s.Up(), geom.Up)
			if after >= before || after > math.Pi/12+1e-9 {
				t.Errorf("tilt %f -> %f, want settled under %f", before, after, math.Pi/12)
			}
		})
	}
}

func TestResolveGroundLevelNoRighting(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Orientation = geom.AxisAngle(geom.UnitZ, 0.2)

	got, _, c := ResolveGround(s, ComputeForces(s, p), 0.05, p)
	if c.Righted || got.Orientation != s.Orientation {
		t.Error("tilt under 15 degrees should be left alone")
	}
}
