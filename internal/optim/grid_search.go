// Package optim tunes scenario parameters by exhaustive grid search over
// headless runs.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/flightsim/internal/analysis"
	"github.com/san-kum/flightsim/internal/config"
	"github.com/san-kum/flightsim/internal/experiment"
)

var ErrNoCandidates = errors.New("optim: no grid point produced the metric")

var autopilotGains = map[string]func(*config.AutopilotConfig) *float64{
	"kp":           func(a *config.AutopilotConfig) *float64 { return &a.Kp },
	"ki":           func(a *config.AutopilotConfig) *float64 { return &a.Ki },
	"kd":           func(a *config.AutopilotConfig) *float64 { return &a.Kd },
	"climb_pitch":  func(a *config.AutopilotConfig) *float64 { return &a.ClimbPitch },
	"rotate_speed": func(a *config.AutopilotConfig) *float64 { return &a.RotateSpeed },
}

// Apply sets a named autopilot gain or aircraft parameter on cfg.
func Apply(cfg *config.Config, name string, v float64) error {
	if field, ok := autopilotGains[name]; ok {
		*field(&cfg.Scenario.Autopilot) = v
		return nil
	}
	return analysis.SetParam(&cfg.Physics, name, v)
}

// ParseRange reads "name=min:max:n" into a parameter name and n evenly
// spaced values.
func ParseRange(s string) (string, []float64, error) {
	name, bounds, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("optim: range %q, want name=min:max:n", s)
	}
	parts := strings.Split(bounds, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("optim: range %q, want name=min:max:n", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, err
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, err
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("optim: range %q needs a positive count", s)
	}

	values := make([]float64, n)
	for i := range values {
		if n == 1 {
			values[i] = lo
			continue
		}
		values[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return name, values, nil
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	// Maximize flips the search to prefer larger metric values.
	Maximize bool
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search runs one experiment per grid point and returns the point with
// the best value of metricName. Points whose runs fail are skipped; a
// canceled context stops the search.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {
	best := math.Inf(1)
	if g.Maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrNoCandidates, metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) better(v, best float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if g.Maximize {
		return v > best
	}
	return v < best
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return nil
		}
		if err := exp.Setup(); err != nil {
			return nil
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return ctx.Err()
		}

		val, ok := result.Metrics[metricName]
		if ok && g.better(val, *best) {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, buildExperiment, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// Builder returns an experiment factory that applies grid points to a
// copy of base.
func Builder(name string, base *config.Config) func(map[string]float64) (*experiment.Experiment, error) {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		for k, v := range params {
			if err := Apply(&cfg, k, v); err != nil {
				return nil, err
			}
		}
		return experiment.New(name, &cfg), nil
	}
}
