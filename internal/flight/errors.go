package flight

import "errors"

var (
	// ErrParameterBounds indicates a physics parameter outside its valid range.
	ErrParameterBounds = errors.New("flight: parameter out of valid bounds")

	// ErrInvalidState indicates NaN or Inf in position, velocity or orientation.
	ErrInvalidState = errors.New("flight: invalid state (NaN or Inf detected)")
)
