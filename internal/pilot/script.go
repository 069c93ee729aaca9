package pilot

import (
	"sort"

	"github.com/san-kum/flightsim/internal/flight"
)

// Segment holds a set of controls over the interval [From, To).
// Throttle is a request direction like flight.Controls.ThrottleDelta.
// A Reset segment fires once, on the first tick that falls inside it.
type Segment struct {
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Throttle float64 `yaml:"throttle"`
	Pitch    float64 `yaml:"pitch"`
	Roll     float64 `yaml:"roll"`
	Yaw      float64 `yaml:"yaw"`
	Reset    bool    `yaml:"reset"`
}

func (g Segment) contains(t float64) bool { return t >= g.From && t < g.To }

// Script replays timed segments. Where segments overlap the earliest
// starting one wins; outside every segment the controls are centered.
type Script struct {
	segments []Segment
	fired    map[int]bool
}

func NewScript(segments []Segment) *Script {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })
	return &Script{segments: sorted, fired: make(map[int]bool)}
}

func (s *Script) Controls(_ flight.State, t float64) flight.Controls {
	for i, g := range s.segments {
		if !g.contains(t) {
			continue
		}
		c := flight.Controls{
			ThrottleDelta: g.Throttle,
			Pitch:         g.Pitch,
			Roll:          g.Roll,
			Yaw:           g.Yaw,
		}
		if g.Reset && !s.fired[i] {
			s.fired[i] = true
			c.Reset = true
		}
		return c
	}
	return flight.Controls{}
}

func (s *Script) Reset() {
	s.fired = make(map[int]bool)
}

// Duration is the end time of the last segment.
func (s *Script) Duration() float64 {
	end := 0.0
	for _, g := range s.segments {
		if g.To > end {
			end = g.To
		}
	}
	return end
}
