package sim

import (
	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine", func() {
	var e *Engine

	spawnAt := func(number int, x, y float64) *dynamo.Atom {
		id, err := e.Spawn(r2.Vec{X: x, Y: y}, number, 0)
		Expect(err).NotTo(HaveOccurred())
		a, ok := e.world.Get(id)
		Expect(ok).To(BeTrue())
		return a
	}

	BeforeEach(func() {
		var err error
		e, err = New(dynamo.DefaultConfig(), WithSeed(3))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("bond graph invariants", func() {
		It("keeps bonds symmetric and within valence every tick", func() {
			mix := []int{element.Hydrogen, element.Oxygen, element.Carbon, element.Hydrogen, element.Sulfur, element.Nitrogen}
			for i := 0; i < 48; i++ {
				a := spawnAt(mix[i%len(mix)], 80+float64(i%8)*70, 80+float64(i/8)*70)
				a.Vel = r2.Vec{X: e.rng.Float64()*8 - 4, Y: e.rng.Float64()*8 - 4}
			}
			for tick := 0; tick < 90; tick++ {
				e.Tick()
				for _, a := range e.world.Atoms() {
					Expect(a.BondCount()).To(BeNumerically("<=", a.Capacity()))
					for _, b := range a.Bonds {
						Expect(e.world.BondOrder(b.Partner, a.ID)).To(Equal(b.Order))
					}
				}
			}
		})
	})

	Describe("bond formation", func() {
		It("bonds a hydrogen and an oxygen placed within reach", func() {
			h := spawnAt(element.Hydrogen, 300, 300)
			o := spawnAt(element.Oxygen, 300, 300)
			o.Pos.X += 1.2 * (h.Radius + o.Radius)

			e.Tick()
			Expect(e.BondOrder(h.ID, o.ID)).To(Equal(1))
			Expect(e.Last().Formed).To(BeNumerically(">=", 1))
		})
	})

	Describe("ring strain", func() {
		It("refuses to close a three-membered ring over a bent center", func() {
			c1 := spawnAt(element.Carbon, 300, 300)
			c2 := spawnAt(element.Carbon, 300, 300)
			c2.Pos.X += 1.2 * (c1.Radius + c2.Radius)
			o := spawnAt(element.Oxygen, (c1.Pos.X+c2.Pos.X)/2, 325)
			e.world.AddBond(c1.ID, o.ID)
			e.world.AddBond(c2.ID, o.ID)

			Expect(physics.AtomGeometry(o).Angle).To(BeNumerically(">", 85*3.14159265/180))
			e.Tick()
			Expect(e.BondOrder(c1.ID, c2.ID)).To(BeZero())
		})
	})

	Describe("decay", func() {
		It("transmutes in place, clears bonds and kicks the product", func() {
			be, _ := e.table.BySymbol("Be")
			a := e.world.Add(be, 2, r2.Vec{X: 400, Y: 300})
			h := spawnAt(element.Hydrogen, 425, 300)
			e.world.AddBond(a.ID, h.ID)

			e.Tick()

			v, ok := e.Atom(a.ID)
			Expect(ok).To(BeTrue())
			Expect(v.Symbol).To(Equal("He"))
			Expect(v.Bonds).To(BeEmpty())
			Expect(r2.Norm(v.Vel)).To(BeNumerically(">", 0))
			Expect(e.Last().Decayed).To(Equal(1))
		})

		It("removes atoms whose product is unknown", func() {
			table := element.NewTable(element.Element{
				Number: 1, Symbol: "Q", Valence: 1, Electrons: 1,
				Isotopes: []element.Isotope{{Mass: 3, HalfLife: 1e-9, Mode: element.BetaMinus, Product: 77}},
			})
			var err error
			e, err = New(dynamo.DefaultConfig(), WithTable(table))
			Expect(err).NotTo(HaveOccurred())
			spawnAt(1, 100, 100)

			e.Tick()
			Expect(e.Len()).To(BeZero())
		})
	})

	Describe("gravity well", func() {
		It("herds its targets together and expires", func() {
			a := spawnAt(element.Neon, 250, 300)
			b := spawnAt(element.Neon, 550, 300)
			start := r2.Norm(r2.Sub(a.Pos, b.Pos))

			_, err := e.TriggerWell([]dynamo.AtomID{a.ID, b.ID}, r2.Vec{X: 400, Y: 300})
			Expect(err).NotTo(HaveOccurred())

			cfg := e.Config()
			for i := 0; i < cfg.WellDuration/cfg.Substeps; i++ {
				e.Tick()
			}
			Expect(e.Wells()).To(BeEmpty())
			Expect(r2.Norm(r2.Sub(a.Pos, b.Pos))).To(BeNumerically("<", start/2))
		})
	})

	Describe("drag protection", func() {
		It("keeps a dragged molecule intact while stretched", func() {
			h := spawnAt(element.Hydrogen, 100, 300)
			o := spawnAt(element.Oxygen, 127, 300)
			e.world.AddBond(h.ID, o.ID)
			Expect(e.SetDragTarget(h.ID)).To(Succeed())

			for i := 0; i < 20; i++ {
				e.SetDragGoal(r2.Vec{X: 700, Y: 300})
				e.Tick()
				Expect(e.BondOrder(h.ID, o.ID)).To(Equal(1))
			}
			Expect(e.DragGroup()).To(ConsistOf(h.ID, o.ID))
		})

		It("releases the drag when the anchor is deleted", func() {
			h := spawnAt(element.Hydrogen, 100, 300)
			Expect(e.SetDragTarget(h.ID)).To(Succeed())
			Expect(e.Delete(h.ID)).To(Succeed())

			Expect(func() { e.Tick() }).NotTo(Panic())
			Expect(e.DragAnchor()).To(BeZero())
		})
	})
})
