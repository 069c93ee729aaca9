package analysis

import (
	"math"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/geom"
	"github.com/san-kum/flightsim/internal/pilot"
)

// Sensitivity estimates how fast two flights that start perturb apart
// separate, in 1/s. Both flights receive identical controls, taken from
// the unperturbed one. Positive values mean small differences in a replay
// grow; ground contact and obstacle bounces are the usual sources.
//
// The separation is renormalized to |perturb| whenever it exceeds one
// metre so the estimate stays in the linear regime.
func Sensitivity(
	p flight.Params,
	field flight.Field,
	pl pilot.Pilot,
	x0 flight.State,
	perturb geom.Vec3,
	dt, duration float64,
) float64 {
	d0 := perturb.Len()
	if d0 == 0 || dt <= 0 {
		return 0
	}
	if pl == nil {
		pl = pilot.None{}
	}

	x := x0
	xp := x0
	xp.Position = xp.Position.Add(perturb)

	t := 0.0
	sumLog := 0.0
	count := 0

	for t < duration {
		c := pl.Controls(x, t)
		if c.Reset {
			// both copies would land on the same reset state
			break
		}
		x, _ = flight.Step(x, c, dt, p, field)
		xp, _ = flight.Step(xp, c, dt, p, field)
		t += dt

		delta := xp.Position.Sub(x.Position)
		sep := delta.Len()
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		if sep > 1.0 {
			xp.Position = x.Position.Add(delta.Mul(d0 / sep))
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
