package pilot

import "github.com/san-kum/flightsim/internal/flight"

// None leaves every control centered and the throttle where it is.
type None struct{}

func (None) Controls(flight.State, float64) flight.Controls { return flight.Controls{} }
