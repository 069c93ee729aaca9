package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/flightsim/internal/flight"
	"github.com/san-kum/flightsim/internal/sim"
)

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix is ambiguous")
)

const (
	metadataFile   = "metadata.json"
	statesCSVFile  = "states.csv"
	trajectoryFile = "states.msgpack"
)

// ControlLabels name the control columns that follow the state columns
// in states.csv.
var ControlLabels = []string{"throttle_delta", "pitch", "roll", "yaw"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Pilot     string             `json:"pilot"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	MaxDt     float64            `json:"max_dt"`
	FixedStep float64            `json:"fixed_step,omitempty"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Resets    int                `json:"resets"`
	Hits      int                `json:"hits"`
	Obstacles int                `json:"obstacles"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Params    flight.Params      `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run under a fresh id and returns the id. meta supplies
// the scenario description; ID, Timestamp and the counters are filled in
// from result.
func (s *Store) Save(meta RunMetadata, field flight.Field, result *sim.Result) (string, error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = s.now()
	meta.Steps = result.StepsTaken
	meta.Resets = result.Resets
	meta.Hits = result.Hits
	meta.Obstacles = len(field)
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStatesCSV(filepath.Join(runDir, statesCSVFile), result); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), NewTrajectory(result, field)); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeStatesCSV(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append([]string{"time"}, flight.VectorLabels...)
	header = append(header, ControlLabels...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, st := range result.States {
		row := []string{formatFloat(result.Times[i])}
		for _, v := range st.Vector() {
			row = append(row, formatFloat(v))
		}
		// controls[i-1] produced states[i]; the initial state has none
		var c flight.Controls
		if i > 0 && i-1 < len(result.Controls) {
			c = result.Controls[i-1]
		}
		for _, v := range []float64{c.ThrottleDelta, c.Pitch, c.Roll, c.Yaw} {
			row = append(row, formatFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

// Resolve expands a unique id prefix to the full run id.
func (s *Store) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	if _, err := os.Stat(filepath.Join(s.baseDir, prefix, metadataFile)); err == nil {
		return prefix, nil
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s matches %d runs", ErrAmbiguousRun, prefix, len(matches))
	}
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadStates reads states.csv back as flat state vectors (see
// flight.VectorLabels) and their times. Control columns are dropped.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesCSVFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	width := len(flight.VectorLabels)
	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < width+1 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		state := make([]float64, 0, width)
		for j := 1; j <= width; j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: %s row %d column %s: %w", runID, i, flight.VectorLabels[j-1], err)
			}
			state = append(state, val)
		}
		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}
