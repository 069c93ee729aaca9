package flight

// Report carries per-tick diagnostics for metrics and logging. It is not
// needed to advance the simulation.
type Report struct {
	Forces  Forces
	Contact Contact
	Hits    []Hit
	Reset   bool
}

// Step advances s by dt. It applies the controls, then runs orientation,
// forces, ground contact, integration and obstacle resolution in that
// order. dt is used as given; callers clamp it.
func Step(s State, c Controls, dt float64, p Params, field Field) (State, Report) {
	if c.Reset {
		return Reset(p), Report{Reset: true}
	}
	s = ApplyControls(s, c, dt, p)

	s.Orientation = UpdateOrientation(s, dt, p)

	f := ComputeForces(s, p)

	var contact Contact
	s, f, contact = ResolveGround(s, f, dt, p)

	s = Integrate(s, f.Net, contact.Grounded, dt, p)

	var hits []Hit
	s, hits = ResolveObstacles(s, field, p)
	// a push-out over a tall obstacle must not lift the aircraft past the ceiling
	s = clampCeiling(s, p)

	return s, Report{Forces: f, Contact: contact, Hits: hits}
}

// Stepper keeps a State and advances it in place. It is the mutable
// owner used by interactive loops; Step itself stays pure.
type Stepper struct {
	Params Params
	Field  Field
	State  State
	Last   Report
}

func NewStepper(p Params, field Field) *Stepper {
	return &Stepper{Params: p, Field: field, State: Reset(p)}
}

func (st *Stepper) Step(c Controls, dt float64) State {
	st.State, st.Last = Step(st.State, c, dt, st.Params, st.Field)
	return st.State
}

func (st *Stepper) Reset() {
	st.State = Reset(st.Params)
	st.Last = Report{Reset: true}
}
