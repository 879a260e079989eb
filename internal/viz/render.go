package viz

import (
	"math"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/particle"
	"github.com/san-kum/atomsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// world returns the arena size; unbounded engines are framed as 800x600.
func (m *Model) world() (float64, float64) {
	cfg := m.engine.Config()
	if cfg.Bounded() {
		return cfg.Width, cfg.Height
	}
	return 800, 600
}

// projection maps world units to canvas dots with one uniform scale, centred.
type projection struct {
	scale  float64
	ox, oy float64
}

func newProjection(worldW, worldH float64, subW, subH int) projection {
	scale := math.Min(float64(subW)/worldW, float64(subH)/worldH)
	return projection{
		scale: scale,
		ox:    (float64(subW) - worldW*scale) / 2,
		oy:    (float64(subH) - worldH*scale) / 2,
	}
}

func (p projection) toScreen(v r2.Vec) (int, int) {
	return int(math.Round(v.X*p.scale + p.ox)), int(math.Round(v.Y*p.scale + p.oy))
}

func (p projection) toWorld(x, y int) r2.Vec {
	return r2.Vec{X: (float64(x) - p.ox) / p.scale, Y: (float64(y) - p.oy) / p.scale}
}

func (p projection) length(l float64) int {
	return int(math.Round(l * p.scale))
}

func (m *Model) project() projection {
	w, h := m.world()
	return newProjection(w, h, m.canvas.SubWidth(), m.canvas.SubHeight())
}

// toWorld converts a terminal cell to world coordinates. The canvas sits one
// column in from the left edge.
func (m *Model) toWorld(col, row int) (r2.Vec, bool) {
	col--
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return r2.Vec{}, false
	}
	p := m.project().toWorld(col*2+1, row*4+2)
	w, h := m.world()
	if p.X < 0 || p.Y < 0 || p.X > w || p.Y > h {
		return r2.Vec{}, false
	}
	return p, true
}

// draw paints walls, wells, bonds, atoms, particles, the lasso and the cursor
// in that order, so later layers own the cell colour.
func (m *Model) draw() {
	c := m.canvas
	c.Clear()
	proj := m.project()

	if m.engine.Config().Bounded() {
		w, h := m.world()
		x0, y0 := proj.toScreen(r2.Vec{})
		x1, y1 := proj.toScreen(r2.Vec{X: w, Y: h})
		c.Ink(string(m.theme.Muted))
		c.DrawPolyline([]int{x0, x1, x1, x0}, []int{y0, y0, y1, y1}, true)
	}

	c.Ink(string(m.theme.Well))
	radius := m.engine.Config().ClearRadius
	for _, w := range m.engine.Wells() {
		x, y := proj.toScreen(w.Center)
		c.DrawCircle(x, y, max(1, proj.length(radius*(1-w.Progress))))
		c.Set(x, y)
	}

	atoms := m.engine.Atoms()
	pos := make(map[dynamo.AtomID]r2.Vec, len(atoms))
	for _, a := range atoms {
		pos[a.ID] = a.Pos
	}
	c.Ink(string(m.theme.Bond))
	for _, b := range m.engine.Bonds() {
		m.drawBond(proj, pos[b.A], pos[b.B], b.Order)
	}

	for _, a := range atoms {
		x, y := proj.toScreen(a.Pos)
		r := max(1, proj.length(a.Radius*0.6))
		c.Ink(a.Color)
		c.FillCircle(x, y, r)
		switch {
		case a.Dragged:
			c.Ink(string(m.theme.Drag))
			c.DrawCircle(x, y, r+2)
		case a.Selected:
			c.Ink(string(m.theme.Lasso))
			c.DrawCircle(x, y, r+2)
		}
	}

	for _, p := range m.particles.Particles() {
		c.Ink(p.Color)
		x, y := proj.toScreen(p.Pos)
		c.Set(x, y)
	}

	if lasso := m.engine.Lasso(); len(lasso) > 0 {
		xs, ys := make([]int, len(lasso)), make([]int, len(lasso))
		for i, p := range lasso {
			xs[i], ys[i] = proj.toScreen(p)
		}
		c.Ink(string(m.theme.Lasso))
		c.DrawPolyline(xs, ys, false)
	}

	c.Ink(string(m.theme.Cursor))
	x, y := proj.toScreen(m.cursor)
	c.DrawLine(x-3, y, x-1, y)
	c.DrawLine(x+1, y, x+3, y)
	c.DrawLine(x, y-3, x, y-1)
	c.DrawLine(x, y+1, x, y+3)
}

// drawBond draws one line per bond order, offset perpendicular to the bond.
func (m *Model) drawBond(proj projection, a, b r2.Vec, order int) {
	ax, ay := proj.toScreen(a)
	bx, by := proj.toScreen(b)
	if order <= 1 {
		m.canvas.DrawLine(ax, ay, bx, by)
		return
	}
	d := r2.Sub(b, a)
	n := r2.Norm(d)
	if n == 0 {
		return
	}
	px, py := -d.Y/n, d.X/n
	for i := 0; i < order; i++ {
		off := float64(i) - float64(order-1)/2
		dx, dy := int(math.Round(px*off*2)), int(math.Round(py*off*2))
		m.canvas.DrawLine(ax+dx, ay+dy, bx+dx, by+dy)
	}
}

// Frame draws the engine's current world on a fresh cols x rows canvas, the
// way the live viewer would with the cursor parked in a corner.
func Frame(e *sim.Engine, cols, rows int, theme string) *Canvas {
	m := NewModel(e, particle.NewSystem(0), WithTheme(theme))
	m.resize(cols+panelWidth+4, rows+1)
	m.cursor = r2.Vec{X: -100, Y: -100}
	m.draw()
	return m.canvas
}
