package dynamo

import (
	"fmt"
	"math"
)

// Stage is one regime of a gravity well: it applies while well progress is
// below Until. Damping is the fraction of velocity a targeted atom keeps each
// substep, so a lower value damps harder.
type Stage struct {
	Until   float64 `yaml:"until"`
	Pull    float64 `yaml:"pull"`
	Damping float64 `yaml:"damping"`
}

// Config holds every physics tunable. Distances are in canvas units, speeds
// in units per substep.
type Config struct {
	Substeps  int     `yaml:"substeps"`
	FrameDt   float64 `yaml:"frame_dt"`
	TimeScale float64 `yaml:"time_scale"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`

	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
	MaxSpeed    float64 `yaml:"max_speed"`

	BondStiffness      float64 `yaml:"bond_stiffness"`
	BondDamping        float64 `yaml:"bond_damping"`
	TangentialDamping  float64 `yaml:"tangential_damping"`
	CollisionStiffness float64 `yaml:"collision_stiffness"`
	CollisionDamping   float64 `yaml:"collision_damping"`

	CullFactor           float64 `yaml:"cull_factor"`
	StretchBreakFactor   float64 `yaml:"stretch_break_factor"`
	ReactionFactor       float64 `yaml:"reaction_factor"`
	ImpactFactor         float64 `yaml:"impact_factor"`
	ImpactSpeedSq        float64 `yaml:"impact_speed_sq"`
	ImpactDamping        float64 `yaml:"impact_damping"`
	PriorityRadiusFactor float64 `yaml:"priority_radius_factor"`
	RingStrainAngle      float64 `yaml:"ring_strain_angle"`

	AngularStiffness float64 `yaml:"angular_stiffness"`

	HubSearchFactor  float64 `yaml:"hub_search_factor"`
	AcidSearchFactor float64 `yaml:"acid_search_factor"`
	AnnealKick       float64 `yaml:"anneal_kick"`

	RecoilImpulse float64 `yaml:"recoil_impulse"`
	DragStiffness float64 `yaml:"drag_stiffness"`

	WellDuration int     `yaml:"well_duration"`
	Gather       Stage   `yaml:"gather"`
	Compress     Stage   `yaml:"compress"`
	Crunch       Stage   `yaml:"crunch"`
	ClearRadius  float64 `yaml:"clear_radius"`
	ClearKick    float64 `yaml:"clear_kick"`
	SpawnJitter  float64 `yaml:"spawn_jitter"`
	BurstSize    int     `yaml:"burst_size"`
}

func DefaultConfig() Config {
	return Config{
		Substeps:  8,
		FrameDt:   1.0 / 60.0,
		TimeScale: 1.0,
		Width:     800,
		Height:    600,

		Friction:    0.995,
		Restitution: 0.5,
		MaxSpeed:    12,

		BondStiffness:      0.2,
		BondDamping:        0.3,
		TangentialDamping:  0.02,
		CollisionStiffness: 0.3,
		CollisionDamping:   0.2,

		CullFactor:           3,
		StretchBreakFactor:   12,
		ReactionFactor:       1.5,
		ImpactFactor:         1.25,
		ImpactSpeedSq:        25,
		ImpactDamping:        0.5,
		PriorityRadiusFactor: 2.5,
		RingStrainAngle:      85,

		AngularStiffness: 1.5,

		HubSearchFactor:  4.5,
		AcidSearchFactor: 10,
		AnnealKick:       2,

		RecoilImpulse: 40,
		DragStiffness: 0.25,

		WellDuration: 240,
		Gather:       Stage{Until: 0.4, Pull: 0.002, Damping: 0.92},
		Compress:     Stage{Until: 0.75, Pull: 0.01, Damping: 0.85},
		Crunch:       Stage{Until: 1, Pull: 0.05, Damping: 0.7},
		ClearRadius:  120,
		ClearKick:    4,
		SpawnJitter:  6,
		BurstSize:    12,
	}
}

// floats names every float tunable for the finiteness check.
func (c Config) floats() map[string]float64 {
	return map[string]float64{
		"frame_dt": c.FrameDt, "time_scale": c.TimeScale,
		"width": c.Width, "height": c.Height,
		"friction": c.Friction, "restitution": c.Restitution, "max_speed": c.MaxSpeed,
		"bond_stiffness": c.BondStiffness, "bond_damping": c.BondDamping,
		"tangential_damping": c.TangentialDamping,
		"collision_stiffness": c.CollisionStiffness, "collision_damping": c.CollisionDamping,
		"cull_factor": c.CullFactor, "stretch_break_factor": c.StretchBreakFactor,
		"reaction_factor": c.ReactionFactor, "impact_factor": c.ImpactFactor,
		"impact_speed_sq": c.ImpactSpeedSq, "impact_damping": c.ImpactDamping,
		"priority_radius_factor": c.PriorityRadiusFactor, "ring_strain_angle": c.RingStrainAngle,
		"angular_stiffness": c.AngularStiffness,
		"hub_search_factor": c.HubSearchFactor, "acid_search_factor": c.AcidSearchFactor,
		"anneal_kick": c.AnnealKick,
		"recoil_impulse": c.RecoilImpulse, "drag_stiffness": c.DragStiffness,
		"gather.until": c.Gather.Until, "gather.pull": c.Gather.Pull, "gather.damping": c.Gather.Damping,
		"compress.until": c.Compress.Until, "compress.pull": c.Compress.Pull, "compress.damping": c.Compress.Damping,
		"crunch.until": c.Crunch.Until, "crunch.pull": c.Crunch.Pull, "crunch.damping": c.Crunch.Damping,
		"clear_radius": c.ClearRadius, "clear_kick": c.ClearKick, "spawn_jitter": c.SpawnJitter,
	}
}

func (c Config) Validate() error {
	for name, v := range c.floats() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %f", ErrInvalidConfig, name, v)
		}
	}
	switch {
	case c.Substeps < 1:
		return fmt.Errorf("%w: substeps must be at least 1, got %d", ErrInvalidConfig, c.Substeps)
	case c.FrameDt <= 0:
		return fmt.Errorf("%w: frame_dt must be positive, got %f", ErrInvalidConfig, c.FrameDt)
	case c.TimeScale < 0:
		return fmt.Errorf("%w: time_scale must not be negative, got %f", ErrInvalidConfig, c.TimeScale)
	case c.Friction <= 0 || c.Friction > 1:
		return fmt.Errorf("%w: friction must be in (0, 1], got %f", ErrInvalidConfig, c.Friction)
	case c.MaxSpeed <= 0:
		return fmt.Errorf("%w: max_speed must be positive, got %f", ErrInvalidConfig, c.MaxSpeed)
	case c.WellDuration < 1:
		return fmt.Errorf("%w: well_duration must be at least 1, got %d", ErrInvalidConfig, c.WellDuration)
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: bounds must not be negative", ErrInvalidConfig)
	case !(c.Gather.Until <= c.Compress.Until && c.Compress.Until <= c.Crunch.Until):
		return fmt.Errorf("%w: well stages must be ordered", ErrInvalidConfig)
	}
	return nil
}

// Bounded reports whether containment walls are active.
func (c Config) Bounded() bool { return c.Width > 0 && c.Height > 0 }
