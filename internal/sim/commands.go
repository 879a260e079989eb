package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// recipeSpacing separates ingredients along the spawn spiral.
const recipeSpacing = 18.0

// Spawn adds an atom of the given element and isotope at pos.
func (e *Engine) Spawn(pos r2.Vec, number, isotope int) (dynamo.AtomID, error) {
	el, ok := e.table.Lookup(number)
	if !ok {
		return 0, fmt.Errorf("spawn %d: %w", number, dynamo.ErrUnknownElement)
	}
	if _, ok := el.Isotope(isotope); !ok {
		return 0, fmt.Errorf("spawn %s[%d]: %w", el.Symbol, isotope, dynamo.ErrUnknownIsotope)
	}
	a := e.world.Add(el, isotope, pos)
	return a.ID, nil
}

// Delete removes an atom and every bond to it.
func (e *Engine) Delete(id dynamo.AtomID) error {
	if !e.world.Remove(id) {
		return fmt.Errorf("delete %d: %w", id, dynamo.ErrAtomNotFound)
	}
	delete(e.selection, id)
	if id == e.dragID {
		e.releaseDrag()
	}
	return nil
}

// Kick adds dv to an atom's velocity.
func (e *Engine) Kick(id dynamo.AtomID, dv r2.Vec) error {
	a, ok := e.world.Get(id)
	if !ok {
		return fmt.Errorf("kick %d: %w", id, dynamo.ErrAtomNotFound)
	}
	a.Vel = r2.Add(a.Vel, dv)
	return nil
}

// ClearAll empties the world and drops wells, drag, lasso and selection.
func (e *Engine) ClearAll() {
	e.world.Clear()
	e.wells = nil
	e.releaseDrag()
	e.lasso = nil
	e.lassoOpen = false
	clear(e.selection)
}

// SetDragTarget anchors id for dragging; 0 releases the current anchor.
func (e *Engine) SetDragTarget(id dynamo.AtomID) error {
	if id == 0 {
		e.releaseDrag()
		return nil
	}
	if !e.world.Has(id) {
		return fmt.Errorf("drag %d: %w", id, dynamo.ErrAtomNotFound)
	}
	e.dragID = id
	e.hasGoal = false
	e.scene.Anchor = id
	clear(e.dragGroup)
	for m := range e.world.ConnectedGroup(id) {
		e.dragGroup[m] = struct{}{}
	}
	return nil
}

// SetDragGoal moves the point the anchored atom is pulled toward.
func (e *Engine) SetDragGoal(pos r2.Vec) {
	if e.dragID == 0 {
		return
	}
	e.dragGoal = pos
	e.hasGoal = true
}

func (e *Engine) BeginLasso(p r2.Vec) {
	e.lasso = append(e.lasso[:0], p)
	e.lassoOpen = true
	clear(e.selection)
}

func (e *Engine) ExtendLasso(p r2.Vec) {
	if !e.lassoOpen {
		return
	}
	e.lasso = append(e.lasso, p)
}

// EndLasso closes the polygon, selects every molecule with an atom inside it
// and triggers a gravity well over the selection.
func (e *Engine) EndLasso() (int, error) {
	if !e.lassoOpen {
		return 0, fmt.Errorf("lasso: %w", dynamo.ErrNoAtoms)
	}
	poly := e.lasso
	e.lassoOpen = false
	e.lasso = nil

	ids := e.SelectPolygon(poly)
	if len(ids) == 0 {
		return 0, fmt.Errorf("lasso: %w", dynamo.ErrNoAtoms)
	}
	return e.TriggerWell(ids, e.centroid(ids))
}

// SelectPolygon replaces the selection with every atom inside poly, expanded
// to whole molecules, and returns it in slot order.
func (e *Engine) SelectPolygon(poly []r2.Vec) []dynamo.AtomID {
	clear(e.selection)
	if len(poly) < 3 {
		return nil
	}
	for _, a := range e.world.Atoms() {
		if e.selection.Has(a.ID) || !insidePolygon(a.Pos, poly) {
			continue
		}
		for id := range e.world.ConnectedGroup(a.ID) {
			e.selection[id] = struct{}{}
		}
	}
	return e.Selection()
}

// TriggerWell starts a gravity well pulling targets toward center. Unknown
// identities are dropped.
func (e *Engine) TriggerWell(targets []dynamo.AtomID, center r2.Vec) (int, error) {
	live := make([]dynamo.AtomID, 0, len(targets))
	for _, id := range targets {
		if e.world.Has(id) {
			live = append(live, id)
		}
	}
	if len(live) == 0 {
		return 0, fmt.Errorf("well: %w", dynamo.ErrNoAtoms)
	}
	e.nextWell++
	e.wells = append(e.wells, physics.NewWell(e.nextWell, live, center, e.cfg.WellDuration))
	e.log.Debug("well triggered", "well", e.nextWell, "targets", len(live))
	return e.nextWell, nil
}

// TriggerRecipe clears the spawn zone, spawns the ingredients around center
// and herds them together with a gravity well. Ingredients are atomic
// numbers; all are validated before anything changes.
func (e *Engine) TriggerRecipe(center r2.Vec, ingredients []int) ([]dynamo.AtomID, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("recipe: %w", dynamo.ErrNoAtoms)
	}
	for _, n := range ingredients {
		if _, ok := e.table.Lookup(n); !ok {
			return nil, fmt.Errorf("recipe ingredient %d: %w", n, dynamo.ErrUnknownElement)
		}
	}

	if moved := physics.ClearZone(e.scene, center, e.cfg.ClearRadius); moved > 0 {
		e.log.Debug("cleared recipe zone", "molecules", moved)
	}

	ids := make([]dynamo.AtomID, 0, len(ingredients))
	golden := math.Pi * (3 - math.Sqrt(5))
	for i, n := range ingredients {
		angle := float64(i) * golden
		radius := recipeSpacing*math.Sqrt(float64(i)) + e.rng.Float64()*e.cfg.SpawnJitter
		pos := r2.Add(center, r2.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
		id, err := e.Spawn(pos, n, 0)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	if _, err := e.TriggerWell(ids, center); err != nil {
		return ids, err
	}
	return ids, nil
}

// SetTimeScale scales the decay clock; 0 freezes decay.
func (e *Engine) SetTimeScale(f float64) error {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: time scale %f", dynamo.ErrInvalidConfig, f)
	}
	e.cfg.TimeScale = f
	return nil
}

func (e *Engine) centroid(ids []dynamo.AtomID) r2.Vec {
	var c r2.Vec
	n := 0
	for _, id := range ids {
		if a, ok := e.world.Get(id); ok {
			c = r2.Add(c, a.Pos)
			n++
		}
	}
	if n == 0 {
		return c
	}
	return r2.Scale(1/float64(n), c)
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(p r2.Vec, poly []r2.Vec) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
