package viz

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/experiment"
	"github.com/san-kum/atomsim/internal/particle"
)

// particleLimit bounds the live particle system.
const particleLimit = 2000

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuFaint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// settings the config screen can edit, in display order.
var settingNames = []string{"atoms", "seed", "substeps", "time_scale"}

// App is the full-screen front end: pick a scenario, tune it, then watch it.
type App struct {
	state, cursor int
	scenarios     []string
	base          *config.Config
	cfg           *config.Config
	registry      *experiment.Registry
	log           *slog.Logger
	theme         string

	setting int
	editing bool
	editBuf string
	err     error

	size tea.WindowSizeMsg
	live Model
}

func NewApp(cfg *config.Config, reg *experiment.Registry, log *slog.Logger, theme string) App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := App{
		state:     stateMenu,
		scenarios: reg.ListScenarios(),
		base:      cfg,
		cfg:       cfg.Clone(),
		registry:  reg,
		log:       log,
		theme:     theme,
	}
	for i, name := range a.scenarios {
		if name == cfg.Scenario {
			a.cursor = i
		}
	}
	return a
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.size = msg
		if a.state == stateSim {
			return a.forward(msg)
		}
		return a, nil
	case tea.KeyMsg:
		switch a.state {
		case stateMenu:
			return a.menuKey(msg)
		case stateConfig:
			return a.configKey(msg)
		case stateSim:
			if msg.String() == "esc" {
				a.state = stateMenu
				return a, nil
			}
			return a.forward(msg)
		}
	default:
		if a.state == stateSim {
			return a.forward(msg)
		}
	}
	return a, nil
}

func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.live.Update(msg)
	a.live = next.(Model)
	return a, cmd
}

func (a App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.scenarios)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.cfg = a.base.Clone()
		a.cfg.Scenario = a.scenarios[a.cursor]
		a.state, a.setting, a.err = stateConfig, 0, nil
	}
	return a, nil
}

func (a App) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			a.err = a.set(settingNames[a.setting], a.editBuf)
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-") {
				a.editBuf += s
			}
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "esc":
		a.state = stateMenu
	case "up", "k":
		if a.setting > 0 {
			a.setting--
		}
	case "down", "j":
		if a.setting < len(settingNames)-1 {
			a.setting++
		}
	case "enter", " ":
		a.editing, a.editBuf = true, a.get(settingNames[a.setting])
	case "s":
		return a.start()
	}
	return a, nil
}

func (a *App) get(name string) string {
	switch name {
	case "atoms":
		return strconv.Itoa(a.cfg.Atoms)
	case "seed":
		return strconv.FormatInt(a.cfg.Seed, 10)
	case "substeps":
		return strconv.Itoa(a.cfg.Physics.Substeps)
	case "time_scale":
		return strconv.FormatFloat(a.cfg.Physics.TimeScale, 'g', -1, 64)
	}
	return ""
}

func (a *App) set(name, value string) error {
	var err error
	switch name {
	case "atoms":
		a.cfg.Atoms, err = strconv.Atoi(value)
	case "seed":
		a.cfg.Seed, err = strconv.ParseInt(value, 10, 64)
	case "substeps":
		a.cfg.Physics.Substeps, err = strconv.Atoi(value)
	case "time_scale":
		a.cfg.Physics.TimeScale, err = strconv.ParseFloat(value, 64)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// start builds the chosen scenario with a live particle system.
func (a App) start() (tea.Model, tea.Cmd) {
	ps := particle.NewSystem(particleLimit)
	exp := experiment.New(a.cfg, a.registry, experiment.WithLogger(a.log), experiment.WithParticleSink(ps))
	engine, err := exp.Build(a.cfg.Seed)
	if err != nil {
		a.err = err
		return a, nil
	}
	a.log.Info("live session", "scenario", a.cfg.Scenario, "atoms", engine.Len(), "seed", a.cfg.Seed)

	a.live = NewModel(engine, ps,
		WithTitle(a.cfg.Scenario),
		WithRegistry(a.registry),
		WithTheme(a.theme),
		WithModelLogger(a.log),
	)
	if a.size.Width > 0 {
		a.live.resize(a.size.Width, a.size.Height)
	}
	a.state = stateSim
	return a, a.live.Init()
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateSim:
		return a.live.View()
	}
	return ""
}

func (a App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("ATOMSIM") + "\n    " + menuSub.Render("2d chemistry sandbox") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range a.scenarios {
		desc := ""
		if sc, err := a.registry.Scenario(name); err == nil {
			desc = sc.Description
		}
		if len(desc) > 40 {
			desc = desc[:37] + "..."
		}
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuMark.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuFaint.Render(desc)))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (a App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(a.cfg.Scenario)) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range settingNames {
		val := fmt.Sprintf("%8s", a.get(name))
		if a.editing && i == a.setting {
			val = fmt.Sprintf("%8s", a.editBuf+"_")
		}
		if i == a.setting {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuMark.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuDesc.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-10s", name)), menuFaint.Render(val)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + menuErr.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

// RunInteractive opens the scenario picker full screen.
func RunInteractive(cfg *config.Config, reg *experiment.Registry, log *slog.Logger, theme string) error {
	_, err := tea.NewProgram(NewApp(cfg, reg, log, theme), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// RunLive shows one model full screen.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
