package automation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/san-kum/atomsim/internal/experiment"
	"github.com/san-kum/atomsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScript = errors.New("invalid script")

const (
	OpSpawn     = "spawn"
	OpRecipe    = "recipe"
	OpLasso     = "lasso"
	OpKick      = "kick"
	OpTimeScale = "time_scale"
	OpClear     = "clear"
)

// Script is a timed list of engine commands played during a headless run.
type Script struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Actions     []Action `yaml:"actions"`
}

// Action runs once the engine has completed Tick ticks; tick 0 runs before
// the first one.
type Action struct {
	Tick     int         `yaml:"tick"`
	Op       string      `yaml:"op"`
	Element  string      `yaml:"element,omitempty"`
	Isotope  int         `yaml:"isotope,omitempty"`
	At       []float64   `yaml:"at,omitempty"`
	Velocity []float64   `yaml:"velocity,omitempty"`
	Recipe   string      `yaml:"recipe,omitempty"`
	Region   [][]float64 `yaml:"region,omitempty"`
	Radius   float64     `yaml:"radius,omitempty"`
	Scale    *float64    `yaml:"scale,omitempty"`
}

// LoadScript reads and validates a yaml script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks each action carries what its op needs. Element and recipe
// names are resolved later, against the engine's table and the registry.
func (s *Script) Validate() error {
	for i, a := range s.Actions {
		bad := func(format string, args ...any) error {
			return fmt.Errorf("%w: action %d (%s): %s", ErrInvalidScript, i, a.Op, fmt.Sprintf(format, args...))
		}
		if a.Tick < 0 {
			return bad("negative tick %d", a.Tick)
		}
		switch a.Op {
		case OpSpawn:
			if a.Element == "" {
				return bad("element is required")
			}
			if len(a.At) != 2 {
				return bad("at needs two coordinates")
			}
			if a.Velocity != nil && len(a.Velocity) != 2 {
				return bad("velocity needs two components")
			}
		case OpRecipe:
			if a.Recipe == "" || len(a.At) != 2 {
				return bad("recipe and at are required")
			}
		case OpLasso:
			if len(a.Region) < 3 {
				return bad("region needs at least three points")
			}
			for _, p := range a.Region {
				if len(p) != 2 {
					return bad("region points need two coordinates")
				}
			}
		case OpKick:
			if len(a.At) != 2 || len(a.Velocity) != 2 {
				return bad("at and velocity are required")
			}
		case OpTimeScale:
			if a.Scale == nil || *a.Scale < 0 {
				return bad("scale must be given and not negative")
			}
		case OpClear:
		default:
			return bad("unknown op")
		}
	}
	return nil
}

func vec(p []float64) r2.Vec { return r2.Vec{X: p[0], Y: p[1]} }

// Player applies a script to one engine. It is a sim.Observer: attach it to
// the runner (or engine) and call Start before the first tick.
type Player struct {
	actions  []Action
	next     int
	engine   *sim.Engine
	registry *experiment.Registry
	log      *slog.Logger
	applied  int
	errs     []error
}

func NewPlayer(s *Script, e *sim.Engine, reg *experiment.Registry, log *slog.Logger) *Player {
	actions := append([]Action(nil), s.Actions...)
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Tick < actions[j].Tick })
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Player{actions: actions, engine: e, registry: reg, log: log}
}

// Start plays every action scheduled at or before the engine's current tick.
func (p *Player) Start() { p.playUntil(p.engine.TickCount()) }

func (p *Player) OnTick(s sim.Stats) { p.playUntil(s.Tick) }

func (p *Player) playUntil(tick int) {
	for p.next < len(p.actions) && p.actions[p.next].Tick <= tick {
		a := p.actions[p.next]
		p.next++
		if err := p.apply(a); err != nil {
			p.log.Warn("script action failed", "tick", a.Tick, "op", a.Op, "err", err)
			p.errs = append(p.errs, fmt.Errorf("tick %d %s: %w", a.Tick, a.Op, err))
			continue
		}
		p.applied++
		p.log.Debug("script action", "tick", a.Tick, "op", a.Op)
	}
}

func (p *Player) apply(a Action) error {
	e := p.engine
	switch a.Op {
	case OpSpawn:
		el, ok := e.Table().BySymbol(a.Element)
		if !ok {
			return fmt.Errorf("unknown element %q", a.Element)
		}
		id, err := e.Spawn(vec(a.At), el.Number, a.Isotope)
		if err != nil {
			return err
		}
		if len(a.Velocity) == 2 {
			return e.Kick(id, vec(a.Velocity))
		}
	case OpRecipe:
		rec, err := p.registry.Recipe(a.Recipe)
		if err != nil {
			return err
		}
		_, err = e.TriggerRecipe(vec(a.At), rec.Ingredients)
		return err
	case OpLasso:
		e.BeginLasso(vec(a.Region[0]))
		for _, pt := range a.Region[1:] {
			e.ExtendLasso(vec(pt))
		}
		_, err := e.EndLasso()
		return err
	case OpKick:
		radius := a.Radius
		if radius == 0 {
			radius = 8
		}
		id, ok := e.Pick(vec(a.At), radius)
		if !ok {
			return fmt.Errorf("no atom near %v", a.At)
		}
		return e.Kick(id, vec(a.Velocity))
	case OpTimeScale:
		return e.SetTimeScale(*a.Scale)
	case OpClear:
		e.ClearAll()
	}
	return nil
}

// Applied is the number of actions that ran without error.
func (p *Player) Applied() int { return p.applied }

// Pending is the number of actions not yet reached.
func (p *Player) Pending() int { return len(p.actions) - p.next }

func (p *Player) Errors() []error { return p.errs }
