package flight

import (
	"testing"

	"github.com/san-kum/flightsim/internal/geom"
)

func TestComputeForcesAtRest(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Throttle = 1

	f := ComputeForces(s, p)

	if f.Thrust != geom.V(0, 0, -5000) {
		t.Errorf("thrust = %v, want (0,0,-5000)", f.Thrust)
	}
	if f.LiftMagnitude != 0 || f.Lift != geom.Zero {
		t.Errorf("no lift expected at rest, got %v", f.Lift)
	}
	if f.Drag != geom.Zero {
		t.Errorf("no drag expected at rest, got %v", f.Drag)
	}
	if f.Net != geom.V(0, -9810, -5000) {
		t.Errorf("net = %v, want (0,-9810,-5000)", f.Net)
	}
}

func TestComputeForcesLiftThreshold(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name  string
		speed float64
		lift  bool
	}{
		{"below onset", p.MinSpeedForLift * 0.7, false},
		{"above onset", p.MinSpeedForLift*0.7 + 0.5, true},
		{"cruise", 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reset(p)
			s.Position = geom.V(0, 300, 0)
			s.Velocity = geom.V(0, 0, -tt.speed)
			f := ComputeForces(s, p)
			if (f.LiftMagnitude > 0) != tt.lift {
				t.Errorf("lift = %f, want present=%v", f.LiftMagnitude, tt.lift)
			}
		})
	}
}

func TestComputeForcesLevelCruise(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Position = geom.V(0, 300, 0)
	s.Velocity = geom.V(0, 0, -60)

	f := ComputeForces(s, p)

	wantLift := 60 * 60 * p.LiftCoefficient
	if !approx(f.LiftMagnitude, wantLift, 1e-9) || !approx(f.Lift.Y(), wantLift, 1e-9) {
		t.Errorf("lift = %v, want %f along up", f.Lift, wantLift)
	}
	wantDrag := 60 * 60 * p.DragCoefficient
	if !approx(f.Drag.Z(), wantDrag, 1e-9) {
		t.Errorf("drag = %v, want +%f along z", f.Drag, wantDrag)
	}
}

func TestComputeForcesTaxiRamp(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Velocity = geom.V(0, 0, -20)

	f := ComputeForces(s, p)

	want := 20 * 20 * p.LiftCoefficient * (20 / p.MinSpeedForLift)
	if !approx(f.LiftMagnitude, want, 1e-9) {
		t.Errorf("grounded lift = %f, want ramped %f", f.LiftMagnitude, want)
	}
}

func TestComputeForcesNoseDownLiftReduction(t *testing.T) {
	p := DefaultParams()
	s := Reset(p)
	s.Position = geom.V(0, 300, 0)
	s.Orientation = geom.AxisAngle(geom.UnitX, -0.5)
	s.Velocity = s.Forward().Mul(60)

	f := ComputeForces(s, p)

	want := 60 * 60 * p.LiftCoefficient * (1 + p.AoALiftReductionMax)
	if !approx(f.LiftMagnitude, want, 1e-6) {
		t.Errorf("lift = %f, want %f", f.LiftMagnitude, want)
	}
	// drag bonus is one-sided
	if !approx(f.Drag.Len(), 60*60*p.DragCoefficient, 1e-6) {
		t.Errorf("nose-down drag = %f, want base %f", f.Drag.Len(), 60*60*p.DragCoefficient)
	}
}

func TestComputeForcesGearDrag(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name   string
		y      float64
		speed  float64
		factor float64
	}{
		{"grounded", p.GroundLevel, 40, 1.5},
		{"low and slow", p.GroundLevel + 5, 20, 1.5},
		{"low and fast", p.GroundLevel + 5, 40, 1.0},
		{"high and slow", p.GroundLevel + 50, 20, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reset(p)
			s.Position = geom.V(0, tt.y, 0)
			s.Velocity = geom.V(0, 0, -tt.speed)
			f := ComputeForces(s, p)
			want := tt.speed * tt.speed * p.DragCoefficient * tt.factor
			if !approx(f.Drag.Len(), want, 1e-9) {
				t.Errorf("drag = %f, want %f", f.Drag.Len(), want)
			}
		})
	}
}
