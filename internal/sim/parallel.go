package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Factory builds a ready-to-run engine for one ensemble member.
type Factory func(seed int64) (*Engine, error)

// Ensemble runs independently seeded engines concurrently. Each engine stays
// on its own goroutine.
type Ensemble struct {
	factory    Factory
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
	limit      int
}

func NewEnsemble(f Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: f, numRuns: numRuns, seedStart: seedStart, limit: runtime.GOMAXPROCS(0)}
}

// WithMetrics sets the constructor for the per-run metric set; metrics hold
// state so every run gets fresh instances.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.newMetrics = fn
	return e
}

func (e *Ensemble) WithLimit(n int) *Ensemble {
	if n > 0 {
		e.limit = n
	}
	return e
}

// Run returns one result per member in seed order. The first failure cancels
// the remaining runs.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(i)

			engine, err := e.factory(cfgCopy.Seed)
			if err != nil {
				return err
			}
			runner := NewRunner(engine)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					runner.AddMetric(m)
				}
			}

			res, err := runner.Run(ctx, cfgCopy)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
