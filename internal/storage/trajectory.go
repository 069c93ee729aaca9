package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/sim"
)

// Trajectory is the full-precision record of a run. states.csv rounds to
// six decimals for spreadsheets; this keeps every bit.
type Trajectory struct {
	Labels    []string          `msgpack:"labels"`
	Times     []float64         `msgpack:"times"`
	States    [][]float64       `msgpack:"states"`
	Controls  []flight.Controls `msgpack:"controls"`
	Obstacles []flight.Obstacle `msgpack:"obstacles"`
}

func NewTrajectory(result *sim.Result, field flight.Field) *Trajectory {
	return &Trajectory{
		Labels:    flight.VectorLabels,
		Times:     result.Times,
		States:    result.Vectors(),
		Controls:  result.Controls,
		Obstacles: field,
	}
}

// FlightStates decodes the stored vectors.
func (t *Trajectory) FlightStates() ([]flight.State, error) {
	out := make([]flight.State, len(t.States))
	for i, v := range t.States {
		s, err := flight.FromVector(v)
		if err != nil {
			return nil, fmt.Errorf("storage: state %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

func writeTrajectory(path string, t *Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return msgpack.NewEncoder(f).Encode(t)
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	var t Trajectory
	if err := msgpack.NewDecoder(f).Decode(&t); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &t, nil
}
