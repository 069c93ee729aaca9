package sim

import (
	"context"
	"runtime"

	"github.com/san-kum/flightsim/internal/flight"
	"golang.org/x/sync/errgroup"
)

// Builder constructs an independent simulator for one ensemble member.
// Pilots and metrics are stateful, so members never share them.
type Builder func(run int) (*Simulator, error)

// Ensemble runs the same scenario several times in parallel, varying the
// frame jitter seed per run.
type Ensemble struct {
	build     Builder
	numRuns   int
	seedStart int64
	limit     int
}

func NewEnsemble(build Builder, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart, limit: runtime.NumCPU()}
}

// SetLimit caps the number of runs in flight. n <= 0 removes the cap.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

// Run returns results in run order. The first failing run cancels the
// others.
func (e *Ensemble) Run(ctx context.Context, x0 flight.State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			s, err := e.build(i)
			if err != nil {
				return err
			}
			runCfg := cfg
			runCfg.Seed = e.seedStart + int64(i)

			res, err := s.Run(ctx, x0, runCfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
