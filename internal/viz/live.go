package viz

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/experiment"
	"github.com/san-kum/atomsim/internal/particle"
	"github.com/san-kum/atomsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 44
	historyCapacity = 300
	cursorStep      = 10
	pickSlack       = 8
	frameRate       = 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives an engine at the frame rate and draws it on a braille canvas.
// All engine access happens inside Update, on the bubbletea goroutine.
type Model struct {
	engine    *sim.Engine
	particles *particle.System
	registry  *experiment.Registry
	log       *slog.Logger
	title     string

	canvas     *Canvas
	theme      Theme
	pal        palette
	cols, rows int

	cursor   r2.Vec
	elements []int
	element  int
	isotope  int
	recipes  []string
	recipe   int

	running   bool
	lassoing  bool
	showHelp  bool
	recorder  *Recorder
	recording bool
	gifPath   string

	bonds     []float64
	energy    []float64
	reactions []float64
	message   string
}

type ModelOption func(*Model)

func WithTitle(title string) ModelOption {
	return func(m *Model) { m.title = title }
}

func WithRegistry(r *experiment.Registry) ModelOption {
	return func(m *Model) { m.registry = r }
}

func WithTheme(name string) ModelOption {
	return func(m *Model) { m.theme = GetTheme(name) }
}

func WithModelLogger(l *slog.Logger) ModelOption {
	return func(m *Model) { m.log = l }
}

// WithGIFPath sets where a recording is written when it stops.
func WithGIFPath(path string) ModelOption {
	return func(m *Model) { m.gifPath = path }
}

// NewModel wraps engine. particles must be the sink the engine emits into.
func NewModel(engine *sim.Engine, particles *particle.System, opts ...ModelOption) Model {
	m := Model{
		engine:    engine,
		particles: particles,
		title:     "atomsim",
		theme:     Themes[0],
		cols:      width,
		rows:      height,
		canvas:    NewCanvas(width, height),
		elements:  engine.Table().Numbers(),
		running:   true,
		recorder:  NewRecorder(historyCapacity),
		gifPath:   "atomsim.gif",
		bonds:     make([]float64, 0, historyCapacity),
		energy:    make([]float64, 0, historyCapacity),
		reactions: make([]float64, 0, historyCapacity),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.registry == nil {
		m.registry = experiment.NewRegistry()
	}
	if m.log == nil {
		m.log = slog.New(slog.DiscardHandler)
	}
	m.recipes = m.registry.ListRecipes()
	m.pal = newPalette(m.theme)
	w, h := m.world()
	m.cursor = r2.Vec{X: w / 2, Y: h / 2}
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.stopRecording()
		}
		return *m, tea.Quit
	case " ":
		m.running = !m.running
	case ".":
		if !m.running {
			m.step()
		}
	case "up", "k":
		m.moveCursor(0, -cursorStep)
	case "down", "j":
		m.moveCursor(0, cursorStep)
	case "left", "h":
		m.moveCursor(-cursorStep, 0)
	case "right", "l":
		m.moveCursor(cursorStep, 0)
	case "K":
		m.moveCursor(0, -4*cursorStep)
	case "J":
		m.moveCursor(0, 4*cursorStep)
	case "H":
		m.moveCursor(-4*cursorStep, 0)
	case "L":
		m.moveCursor(4*cursorStep, 0)
	case "tab":
		m.element = (m.element + 1) % len(m.elements)
		m.isotope = 0
	case "shift+tab":
		m.element = (m.element + len(m.elements) - 1) % len(m.elements)
		m.isotope = 0
	case "i":
		m.cycleIsotope()
	case "enter", "s":
		m.spawn()
	case "g":
		m.toggleDrag()
	case "x":
		m.deleteAtCursor()
	case "o":
		m.toggleLasso()
	case "r":
		m.triggerRecipe()
	case "R":
		if len(m.recipes) > 0 {
			m.recipe = (m.recipe + 1) % len(m.recipes)
		}
	case "+", "=":
		m.scaleTime(2)
	case "-", "_":
		m.scaleTime(0.5)
	case "0":
		m.setTimeScale(0)
	case "c":
		m.engine.ClearAll()
		m.particles.Clear()
		m.lassoing = false
		m.message = "cleared"
	case "G":
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.message = "recording"
		}
	case "t":
		m.theme = NextTheme(m.theme)
		m.pal = newPalette(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return *m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p, ok := m.toWorld(msg.X, msg.Y)
	if !ok {
		return
	}
	m.cursor = p
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if id, ok := m.engine.Pick(p, pickSlack); ok {
				m.grab(id)
			} else {
				m.spawn()
			}
		case tea.MouseButtonRight:
			m.engine.BeginLasso(p)
			m.lassoing = true
		}
	case tea.MouseActionMotion:
		m.follow()
	case tea.MouseActionRelease:
		if m.lassoing {
			m.closeLasso()
		}
		if m.engine.DragAnchor() != 0 {
			m.release()
		}
	}
}

// step advances one frame and records the histories.
func (m *Model) step() {
	stats := m.engine.Tick()
	m.particles.Update()
	m.bonds = push(m.bonds, float64(stats.Bonds))
	m.energy = push(m.energy, stats.KineticEnergy)
	m.reactions = push(m.reactions, float64(stats.Reactions()))
	if m.recording {
		m.draw()
		m.recorder.Capture(m.canvas)
	}
}

func push(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m *Model) resize(w, h int) {
	m.cols = max(20, w-panelWidth-4)
	m.rows = max(8, h-1)
	m.canvas = NewCanvas(m.cols, m.rows)
}

func (m *Model) moveCursor(dx, dy float64) {
	w, h := m.world()
	m.cursor.X = math.Max(0, math.Min(w, m.cursor.X+dx))
	m.cursor.Y = math.Max(0, math.Min(h, m.cursor.Y+dy))
	m.follow()
}

// follow pushes the cursor into an active drag or lasso.
func (m *Model) follow() {
	if m.engine.DragAnchor() != 0 {
		m.engine.SetDragGoal(m.cursor)
	}
	if m.lassoing {
		m.engine.ExtendLasso(m.cursor)
	}
}

func (m *Model) currentElement() (number, isotope int) {
	if len(m.elements) == 0 {
		return 0, 0
	}
	return m.elements[m.element], m.isotope
}

func (m *Model) cycleIsotope() {
	number, _ := m.currentElement()
	el, ok := m.engine.Table().Lookup(number)
	if !ok || len(el.Isotopes) == 0 {
		return
	}
	m.isotope = (m.isotope + 1) % len(el.Isotopes)
}

func (m *Model) spawn() {
	number, iso := m.currentElement()
	if _, err := m.engine.Spawn(m.cursor, number, iso); err != nil {
		m.fail("spawn", err)
	}
}

func (m *Model) grab(id dynamo.AtomID) {
	if err := m.engine.SetDragTarget(id); err != nil {
		m.fail("drag", err)
		return
	}
	m.engine.SetDragGoal(m.cursor)
}

func (m *Model) release() {
	if err := m.engine.SetDragTarget(0); err != nil {
		m.fail("release", err)
	}
}

func (m *Model) toggleDrag() {
	if m.engine.DragAnchor() != 0 {
		m.release()
		return
	}
	id, ok := m.engine.Pick(m.cursor, pickSlack)
	if !ok {
		m.message = "nothing to grab"
		return
	}
	m.grab(id)
}

func (m *Model) deleteAtCursor() {
	id, ok := m.engine.Pick(m.cursor, pickSlack)
	if !ok {
		return
	}
	if err := m.engine.Delete(id); err != nil {
		m.fail("delete", err)
	}
}

func (m *Model) toggleLasso() {
	if !m.lassoing {
		m.engine.BeginLasso(m.cursor)
		m.lassoing = true
		m.message = "lasso: move the cursor, o to close"
		return
	}
	m.closeLasso()
}

func (m *Model) closeLasso() {
	m.lassoing = false
	id, err := m.engine.EndLasso()
	if err != nil {
		m.fail("lasso", err)
		return
	}
	m.message = fmt.Sprintf("well %d over %d atoms", id, len(m.engine.Selection()))
}

func (m *Model) triggerRecipe() {
	if len(m.recipes) == 0 {
		return
	}
	rec, err := m.registry.Recipe(m.recipes[m.recipe])
	if err != nil {
		m.fail("recipe", err)
		return
	}
	if _, err := m.engine.TriggerRecipe(m.cursor, rec.Ingredients); err != nil {
		m.fail("recipe", err)
		return
	}
	m.message = "synthesising " + rec.Formula
}

func (m *Model) scaleTime(f float64) {
	scale := m.engine.Config().TimeScale * f
	if scale == 0 && f > 1 {
		scale = 1
	}
	m.setTimeScale(scale)
}

func (m *Model) setTimeScale(f float64) {
	if err := m.engine.SetTimeScale(f); err != nil {
		m.fail("time scale", err)
	}
}

func (m *Model) stopRecording() {
	m.recording = false
	if err := m.recorder.Save(m.gifPath); err != nil {
		if !errors.Is(err, ErrNoFrames) {
			m.fail("record", err)
		}
		return
	}
	m.message = "saved " + m.gifPath
}

func (m *Model) fail(op string, err error) {
	m.log.Warn(op+" failed", "err", err)
	m.message = fmt.Sprintf("%s: %v", op, err)
}

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := m.pal.canvas.Render(m.canvas.String())

	stats := m.engine.Last()
	var s strings.Builder
	s.WriteString(m.pal.header.Render(strings.ToUpper(m.title)) + "\n")
	status := m.pal.running.Render("RUNNING")
	if !m.running {
		status = m.pal.paused.Render("PAUSED")
	}
	if m.recording {
		status += "  " + m.pal.recording.Render("● REC")
	}
	s.WriteString(status + "\n\n")

	if len(m.bonds) > 1 {
		chart := asciigraph.Plot(m.bonds, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Bonds"))
		s.WriteString(m.pal.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(m.pal.label.Render(label) + m.pal.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", stats.Tick))
	row("Atoms", fmt.Sprintf("%d", stats.Atoms))
	row("Bonds", fmt.Sprintf("%d", stats.Bonds))
	row("Molecules", fmt.Sprintf("%d", stats.Molecules))
	row("Energy", fmt.Sprintf("%.2f", stats.KineticEnergy))
	row("", m.pal.Sparkline(m.energy, 20))
	row("Time scale", fmt.Sprintf("%gx", m.engine.Config().TimeScale))
	row("Reactions", m.pal.Sparkline(m.reactions, 20))
	s.WriteString(m.pal.Separator(34) + "\n")

	number, iso := m.currentElement()
	if el, ok := m.engine.Table().Lookup(number); ok {
		label := el.Symbol
		if isotope, ok := el.Isotope(iso); ok {
			label = fmt.Sprintf("%s-%.0f", el.Symbol, isotope.Mass)
			if !isotope.Stable() {
				label += " (" + isotope.Mode.String() + ")"
			}
		}
		s.WriteString(m.pal.label.Render("Element") + lipgloss.NewStyle().Foreground(lipgloss.Color(el.Color)).Render(label) + "\n")
	}
	if len(m.recipes) > 0 {
		row("Recipe", m.recipes[m.recipe])
	}
	for _, w := range m.engine.Wells() {
		s.WriteString(m.pal.label.Render(fmt.Sprintf("Well %d", w.ID)) + m.pal.ProgressBar(w.Progress, 14) + " " + m.pal.hint.Render(w.Regime) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + m.pal.active.Render(m.message) + "\n")
	}
	s.WriteString(m.pal.help.Render("SP:Pause  Q:Quit  ?:Help\nTab:Element  S:Spawn  R:Recipe\ng:Grab  o:Lasso  t:Theme"))

	panel := m.pal.panel.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space      Pause/Resume             ║
║  .          Step one frame (paused)  ║
║  Arrows/hjkl Move cursor (HJKL fast) ║
║  Tab        Next element             ║
║  i          Next isotope             ║
║  Enter/s    Spawn at cursor          ║
║  x          Delete atom at cursor    ║
║  g          Grab/release molecule    ║
║  o          Open/close lasso         ║
║  r / R      Synthesise / next recipe ║
║  + - 0      Time scale (0 freezes)   ║
║  c          Clear all atoms          ║
║  G          Toggle GIF recording     ║
║  t          Cycle themes             ║
║  Mouse      L: grab/spawn  R: lasso  ║
║  q          Quit                     ║
╚══════════════════════════════════════╝`
