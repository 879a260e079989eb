package sim

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/particle"
	"github.com/san-kum/atomsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Engine owns the atom set and advances it one tick at a time. It is not safe
// for concurrent use; hosts call its commands and Tick from one goroutine.
type Engine struct {
	cfg   dynamo.Config
	table *element.Table
	world *dynamo.World
	grid  *physics.Grid
	scene *physics.Scene
	rng   *rand.Rand
	log   *slog.Logger
	sink  particle.Sink

	wells    []*physics.Well
	nextWell int

	dragID    dynamo.AtomID
	dragGoal  r2.Vec
	hasGoal   bool
	dragGroup dynamo.IDSet

	lasso     []r2.Vec
	lassoOpen bool
	selection dynamo.IDSet

	delta     []r2.Vec
	tick      int
	last      Stats
	observers []Observer
}

type Option func(*Engine)

func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithParticleSink routes visual particles to a host-owned sink.
func WithParticleSink(s particle.Sink) Option {
	return func(e *Engine) { e.sink = s }
}

func WithTable(t *element.Table) Option {
	return func(e *Engine) { e.table = t }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

func New(cfg dynamo.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:       cfg,
		world:     dynamo.NewWorld(),
		grid:      physics.NewGrid(physics.DefaultCellSize),
		dragGroup: dynamo.IDSet{},
		selection: dynamo.IDSet{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.table == nil {
		e.table = element.Default()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	if e.sink == nil {
		e.sink = particle.Discard{}
	}

	e.scene = &physics.Scene{
		World:  e.world,
		Config: &e.cfg,
		Table:  e.table,
		Rand:   e.rng,
		Sink:   e.sink,
		Grid:   e.grid,
		Log:    e.log,
		Drag:   e.dragGroup,
	}
	return e, nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Config() dynamo.Config { return e.cfg }

func (e *Engine) Table() *element.Table { return e.table }

// TickCount is the number of completed ticks.
func (e *Engine) TickCount() int { return e.tick }

// Tick advances the simulation by one frame: decay once, then the configured
// number of substeps of anneal, external forces, geometry, pair resolution
// and integration.
func (e *Engine) Tick() Stats {
	e.scene.Counters.Reset()

	physics.Decay(e.scene, e.cfg.FrameDt*e.cfg.TimeScale)
	e.refreshDrag()

	for i := 0; i < e.cfg.Substeps; i++ {
		e.substep()
	}

	e.tick++
	e.last = e.collect()
	for _, o := range e.observers {
		o.OnTick(e.last)
	}
	return e.last
}

func (e *Engine) substep() {
	e.grid.Rebuild(e.world.Atoms())
	physics.Anneal(e.scene)
	e.applyDrag()
	e.applyWells()
	e.delta = physics.SolveGeometry(e.scene, e.delta)
	physics.Resolve(e.scene)
	e.integrate()
}

// refreshDrag re-validates the anchor and recomputes its bond component. It
// runs once per tick, not per substep.
func (e *Engine) refreshDrag() {
	clear(e.dragGroup)
	if e.dragID == 0 {
		return
	}
	if !e.world.Has(e.dragID) {
		e.log.Debug("drag anchor lost", "atom", e.dragID)
		e.releaseDrag()
		return
	}
	for id := range e.world.ConnectedGroup(e.dragID) {
		e.dragGroup[id] = struct{}{}
	}
}

func (e *Engine) releaseDrag() {
	e.dragID = 0
	e.hasGoal = false
	e.scene.Anchor = 0
	clear(e.dragGroup)
}

// applyDrag steers the anchor toward the goal; the rest of the group follows
// through its bond springs.
func (e *Engine) applyDrag() {
	if e.dragID == 0 || !e.hasGoal {
		return
	}
	a, ok := e.world.Get(e.dragID)
	if !ok {
		return
	}
	a.Vel = r2.Scale(e.cfg.DragStiffness, r2.Sub(e.dragGoal, a.Pos))
}

func (e *Engine) applyWells() {
	live := e.wells[:0]
	for _, w := range e.wells {
		if w.Apply(e.scene) {
			e.log.Debug("well complete", "well", w.ID, "targets", len(w.Targets))
			continue
		}
		live = append(live, w)
	}
	for i := len(live); i < len(e.wells); i++ {
		e.wells[i] = nil
	}
	e.wells = live
}

func (e *Engine) integrate() {
	cfg := &e.cfg
	for _, a := range e.world.Atoms() {
		a.Vel = r2.Scale(cfg.Friction, a.Vel)
		if speed := r2.Norm(a.Vel); speed > cfg.MaxSpeed {
			a.Vel = r2.Scale(cfg.MaxSpeed/speed, a.Vel)
		}
		a.Pos = r2.Add(a.Pos, a.Vel)
		if cfg.Bounded() {
			e.contain(a)
		}
	}
}

// contain reflects atoms off the canvas walls, losing energy per restitution.
func (e *Engine) contain(a *dynamo.Atom) {
	r, w, h := a.Radius, e.cfg.Width, e.cfg.Height
	switch {
	case a.Pos.X < r:
		a.Pos.X = r
		a.Vel.X = math.Abs(a.Vel.X) * e.cfg.Restitution
	case a.Pos.X > w-r:
		a.Pos.X = w - r
		a.Vel.X = -math.Abs(a.Vel.X) * e.cfg.Restitution
	}
	switch {
	case a.Pos.Y < r:
		a.Pos.Y = r
		a.Vel.Y = math.Abs(a.Vel.Y) * e.cfg.Restitution
	case a.Pos.Y > h-r:
		a.Pos.Y = h - r
		a.Vel.Y = -math.Abs(a.Vel.Y) * e.cfg.Restitution
	}
}

func (e *Engine) collect() Stats {
	c := e.scene.Counters
	s := Stats{
		Tick:        e.tick,
		Atoms:       e.world.Len(),
		Bonds:       e.world.BondTotal(),
		Wells:       len(e.wells),
		Formed:      c.Formed,
		Broken:      c.Broken,
		Inserted:    c.Inserted,
		Dissociated: c.Dissociated,
		Annealed:    c.Annealed,
		Decayed:     c.Decayed,
		Vanished:    c.Vanished,
	}
	for _, m := range e.world.Molecules() {
		if len(m) > 1 {
			s.Molecules++
		}
	}
	for _, a := range e.world.Atoms() {
		v2 := r2.Norm2(a.Vel)
		s.KineticEnergy += 0.5 * a.Mass * v2
		s.MaxSpeed = math.Max(s.MaxSpeed, math.Sqrt(v2))
		s.Momentum = r2.Add(s.Momentum, r2.Scale(a.Mass, a.Vel))
	}
	return s
}

// Last returns the stats of the most recent tick.
func (e *Engine) Last() Stats { return e.last }

// Validate reports the first atom holding a non-finite position or velocity.
func (e *Engine) Validate() error {
	for _, a := range e.world.Atoms() {
		if !a.Finite() {
			return &dynamo.SimError{Tick: e.tick, Atom: a.ID, Wrapped: dynamo.ErrInvalidState}
		}
	}
	return nil
}

func (e *Engine) String() string {
	return fmt.Sprintf("engine(tick=%d atoms=%d wells=%d)", e.tick, e.world.Len(), len(e.wells))
}
