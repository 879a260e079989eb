package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/atomsim/internal/dynamo"
)

// Runner ticks an engine headlessly, feeding metrics and observers.
type Runner struct {
	engine    *Engine
	metrics   []Metric
	observers []Observer
}

func NewRunner(e *Engine) *Runner {
	return &Runner{
		engine:    e,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Engine() *Engine { return r.engine }

// Run advances the engine cfg.Ticks times. A cancelled context returns the
// partial result with ctx.Err(); a non-finite atom with ValidateState set
// stops the run with a *dynamo.SimError.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Stats:   make([]Stats, 0, cfg.Ticks),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	var runErr error
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		s := r.engine.Tick()
		result.Stats = append(result.Stats, s)
		result.TicksTaken++
		for _, m := range r.metrics {
			m.Observe(s)
		}
		for _, o := range r.observers {
			o.OnTick(s)
		}

		if cfg.ValidateState {
			if err := r.engine.Validate(); err != nil {
				result.Errors = append(result.Errors, err)
				runErr = err
				break
			}
		}
	}

	result.Final = r.engine.Last()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Ticks)
	}
	return nil
}

