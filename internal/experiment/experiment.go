package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/metrics"
	"github.com/san-kum/atomsim/internal/particle"
	"github.com/san-kum/atomsim/internal/sim"
)

// Experiment builds an engine from a run config, lays out its scenario and
// runs it headlessly.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	log      *slog.Logger
	sink     particle.Sink
	runner   *sim.Runner
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

func WithParticleSink(s particle.Sink) Option {
	return func(e *Experiment) { e.sink = s }
}

func New(cfg *config.Config, reg *Registry, opts ...Option) *Experiment {
	e := &Experiment{cfg: cfg, registry: reg}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	return e
}

// Build returns a fresh engine for cfg seeded with seed and populated by the
// configured scenario.
func (e *Experiment) Build(seed int64) (*sim.Engine, error) {
	return e.build(seed, e.sink)
}

func (e *Experiment) build(seed int64, sink particle.Sink) (*sim.Engine, error) {
	if err := e.cfg.Check(); err != nil {
		return nil, err
	}
	sc, err := e.registry.Scenario(e.cfg.Scenario)
	if err != nil {
		return nil, err
	}

	opts := []sim.Option{sim.WithSeed(seed), sim.WithLogger(e.log.With("seed", seed))}
	if sink != nil {
		opts = append(opts, sim.WithParticleSink(sink))
	}
	engine, err := sim.New(e.cfg.Physics, opts...)
	if err != nil {
		return nil, err
	}

	// layout randomness is separate from the engine's stream
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	if err := sc.Setup(engine, rng, e.cfg.Atoms); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return engine, nil
}

func (e *Experiment) Metrics() ([]sim.Metric, error) {
	if len(e.cfg.Metrics) == 0 {
		return metrics.Defaults(), nil
	}
	out := make([]sim.Metric, 0, len(e.cfg.Metrics))
	for _, name := range e.cfg.Metrics {
		m, err := metrics.ByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (e *Experiment) Setup() error {
	engine, err := e.Build(e.cfg.Seed)
	if err != nil {
		return err
	}
	ms, err := e.Metrics()
	if err != nil {
		return err
	}
	e.runner = sim.NewRunner(engine)
	for _, m := range ms {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	e.log.Info("run started", "scenario", e.cfg.Scenario, "seed", e.cfg.Seed, "ticks", e.cfg.Ticks)
	res, err := e.runner.Run(ctx, e.simConfig(e.cfg.Seed))
	if err != nil {
		return res, err
	}
	e.log.Info("run finished", "bonds", res.Final.Bonds, "molecules", res.Final.Molecules, "atoms", res.Final.Atoms)
	return res, nil
}

// Ensemble runs n copies of the experiment with consecutive seeds. Members
// emit no particles since sinks are not shared across goroutines.
func (e *Experiment) Ensemble(ctx context.Context, n int) ([]*sim.Result, error) {
	if _, err := e.Metrics(); err != nil {
		return nil, err
	}
	factory := func(seed int64) (*sim.Engine, error) { return e.build(seed, nil) }
	ens := sim.NewEnsemble(factory, n, e.cfg.Seed).WithMetrics(func() []sim.Metric {
		ms, _ := e.Metrics()
		return ms
	})
	return ens.Run(ctx, e.simConfig(e.cfg.Seed))
}

// Runner returns the underlying runner for adding observers.
func (e *Experiment) Runner() *sim.Runner {
	return e.runner
}

func (e *Experiment) simConfig(seed int64) sim.Config {
	return sim.Config{Ticks: e.cfg.Ticks, Seed: seed, ValidateState: e.cfg.Validate}
}
