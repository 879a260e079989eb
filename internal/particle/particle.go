// Package particle holds the fire-and-forget visual particles the simulation
// emits on reactions and decays. The engine only writes into a [Sink]; hosts
// own a [System] and age it once per rendered frame.
package particle

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// LifeStep is how much life a particle loses per Update.
const LifeStep = 0.03

type Particle struct {
	Pos   r2.Vec
	Vel   r2.Vec
	Life  float64
	Color string
	Size  float64
}

type Sink interface {
	Emit(p Particle)
}

// Discard drops every particle.
type Discard struct{}

func (Discard) Emit(Particle) {}

// Counter counts emissions without keeping them.
type Counter struct {
	N int
}

func (c *Counter) Emit(Particle) { c.N++ }

// Burst emits n particles radiating from pos with random headings.
func Burst(sink Sink, rng *rand.Rand, pos r2.Vec, color string, n int) {
	if sink == nil {
		return
	}
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 0.5 + rng.Float64()*2.5
		sink.Emit(Particle{
			Pos:   pos,
			Vel:   r2.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Life:  1,
			Color: color,
			Size:  2 + rng.Float64()*2,
		})
	}
}

// System is a Sink that keeps particles alive until their life runs out.
type System struct {
	particles []Particle
	limit     int
}

// NewSystem creates a system holding at most limit particles; zero means
// unlimited.
func NewSystem(limit int) *System {
	return &System{limit: limit}
}

func (s *System) Emit(p Particle) {
	if s.limit > 0 && len(s.particles) >= s.limit {
		s.particles = s.particles[1:]
	}
	s.particles = append(s.particles, p)
}

// Update moves every particle, decrements its life by LifeStep and drops the
// expired ones.
func (s *System) Update() {
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Pos = r2.Add(p.Pos, p.Vel)
		p.Vel = r2.Scale(0.95, p.Vel)
		p.Life -= LifeStep
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	s.particles = alive
}

func (s *System) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

func (s *System) Len() int { return len(s.particles) }

func (s *System) Clear() { s.particles = s.particles[:0] }
