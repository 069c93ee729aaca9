package flight

import "fmt"

// Params holds the aircraft tuning constants. It is created once and
// passed by value; nothing in this package mutates it.
type Params struct {
	Mass             float64 `yaml:"mass"`
	Gravity          float64 `yaml:"gravity"`
	MaxThrottleForce float64 `yaml:"max_throttle_force"`
	LiftCoefficient  float64 `yaml:"lift_coefficient"`
	DragCoefficient  float64 `yaml:"drag_coefficient"`
	MinSpeedForLift  float64 `yaml:"min_speed_for_lift"`

	// angular rates, rad/s at full deflection
	PitchSpeed float64 `yaml:"pitch_speed"`
	RollSpeed  float64 `yaml:"roll_speed"`
	YawSpeed   float64 `yaml:"yaw_speed"`

	StallAngleThresholdRad float64 `yaml:"stall_angle_threshold_rad"`
	StallLiftMultiplier    float64 `yaml:"stall_lift_multiplier"`

	AoALiftGain         float64 `yaml:"aoa_lift_gain"`
	AoALiftBonusMax     float64 `yaml:"aoa_lift_bonus_max"`
	AoALiftReductionMax float64 `yaml:"aoa_lift_reduction_max"`
	AoADragGain         float64 `yaml:"aoa_drag_gain"`
	AoADragBonusMax     float64 `yaml:"aoa_drag_bonus_max"`

	RollingResistanceCoefficient float64 `yaml:"rolling_resistance_coefficient"`
	GroundSteeringFactor         float64 `yaml:"ground_steering_factor"`

	MaxSpeed    float64 `yaml:"max_speed"`
	MaxAltitude float64 `yaml:"max_altitude"`

	PlaneCollisionRadius        float64 `yaml:"plane_collision_radius"`
	MountainCollisionElasticity float64 `yaml:"mountain_collision_elasticity"`

	GroundLevel  float64 `yaml:"ground_level"`
	ThrottleRate float64 `yaml:"throttle_rate"`
}

const (
	// DefaultGroundLevel is the Y of the runway surface.
	DefaultGroundLevel = 1.5
	// DefaultThrottleRate is the throttle change per second of held input.
	DefaultThrottleRate = 0.5
	// DefaultMaxDt bounds a single tick; callers clamp frame time to it.
	DefaultMaxDt = 0.05
)

// DefaultParams returns the stock light-aircraft tuning.
func DefaultParams() Params {
	return Params{
		Mass:             1000,
		Gravity:          9.81,
		MaxThrottleForce: 5000,
		LiftCoefficient:  9,
		DragCoefficient:  0.8,
		MinSpeedForLift:  25,

		PitchSpeed: 1.0,
		RollSpeed:  1.5,
		YawSpeed:   0.5,

		StallAngleThresholdRad: 0.26,
		StallLiftMultiplier:    0.3,

		AoALiftGain:         1.5,
		AoALiftBonusMax:     0.6,
		AoALiftReductionMax: -0.4,
		AoADragGain:         2.0,
		AoADragBonusMax:     1.5,

		RollingResistanceCoefficient: 0.03,
		GroundSteeringFactor:         0.5,

		MaxSpeed:    200,
		MaxAltitude: 500,

		PlaneCollisionRadius:        7.5,
		MountainCollisionElasticity: 0.4,

		GroundLevel:  DefaultGroundLevel,
		ThrottleRate: DefaultThrottleRate,
	}
}

// Ceiling is the highest Y position the aircraft may reach.
func (p Params) Ceiling() float64 { return p.GroundLevel + p.MaxAltitude }

// Weight is the magnitude of the gravity force.
func (p Params) Weight() float64 { return p.Mass * p.Gravity }

// Validate reports parameters the step cannot run with, wrapping
// ErrParameterBounds.
func (p Params) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"mass", p.Mass},
		{"max_speed", p.MaxSpeed},
		{"max_altitude", p.MaxAltitude},
		{"min_speed_for_lift", p.MinSpeedForLift},
	}
	for _, f := range positive {
		if !(f.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrParameterBounds, f.name, f.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"gravity", p.Gravity},
		{"max_throttle_force", p.MaxThrottleForce},
		{"lift_coefficient", p.LiftCoefficient},
		{"drag_coefficient", p.DragCoefficient},
		{"rolling_resistance_coefficient", p.RollingResistanceCoefficient},
		{"plane_collision_radius", p.PlaneCollisionRadius},
		{"throttle_rate", p.ThrottleRate},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %g", ErrParameterBounds, f.name, f.value)
		}
	}

	if p.AoALiftReductionMax > p.AoALiftBonusMax {
		return fmt.Errorf("%w: aoa_lift_reduction_max %g exceeds aoa_lift_bonus_max %g",
			ErrParameterBounds, p.AoALiftReductionMax, p.AoALiftBonusMax)
	}
	if p.AoADragBonusMax < 0 {
		return fmt.Errorf("%w: aoa_drag_bonus_max must be non-negative, got %g", ErrParameterBounds, p.AoADragBonusMax)
	}
	if p.MountainCollisionElasticity < 0 || p.MountainCollisionElasticity > 1 {
		return fmt.Errorf("%w: mountain_collision_elasticity must be in [0,1], got %g",
			ErrParameterBounds, p.MountainCollisionElasticity)
	}
	return nil
}
