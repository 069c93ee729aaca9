package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Pilot     string             `json:"pilot"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Labels    []string           `json:"labels"`
	Times     []float64          `json:"times"`
	States    [][]float64        `json:"states"`
	Controls  [][]float64        `json:"controls"`
	Obstacles [][]float64        `json:"obstacles"`
	Metrics   map[string]float64 `json:"metrics"`
}

func NewExportData(meta *RunMetadata, t *Trajectory) ExportData {
	data := ExportData{
		ID:        meta.ID,
		Scenario:  meta.Scenario,
		Pilot:     meta.Pilot,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Steps:     meta.Steps,
		Labels:    t.Labels,
		Times:     t.Times,
		States:    t.States,
		Controls:  make([][]float64, len(t.Controls)),
		Obstacles: make([][]float64, len(t.Obstacles)),
		Metrics:   meta.Metrics,
	}

	for i, c := range t.Controls {
		data.Controls[i] = []float64{c.ThrottleDelta, c.Pitch, c.Roll, c.Yaw}
	}
	for i, ob := range t.Obstacles {
		data.Obstacles[i] = []float64{ob.Position.X(), ob.Position.Y(), ob.Position.Z(), ob.Radius}
	}
	return data
}

// ExportJSON writes a stored run as one indented JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	t, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, t))
}
