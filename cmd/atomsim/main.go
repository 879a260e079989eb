package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/atomsim/internal/analysis"
	"github.com/san-kum/atomsim/internal/automation"
	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/experiment"
	"github.com/san-kum/atomsim/internal/export"
	"github.com/san-kum/atomsim/internal/metrics"
	"github.com/san-kum/atomsim/internal/optim"
	"github.com/san-kum/atomsim/internal/particle"
	"github.com/san-kum/atomsim/internal/sim"
	"github.com/san-kum/atomsim/internal/storage"
	"github.com/san-kum/atomsim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	verbose    bool

	preset      string
	ticks       int
	atoms       int
	seed        int64
	substeps    int
	timeScale   float64
	metricNames []string
	validate    bool

	jsonOut       string
	noSave        bool
	scriptPath    string
	svgOut        string
	svgStyle      string
	preview       bool
	runs          int
	series        []string
	analyzeSeries []string
	theme         string
	gifPath       string

	axes     []string
	metric   string
	maximize bool
)

// main registers the commands and opens the interactive picker when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "atomsim",
		Short:        "2d chemistry sandbox",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadBase()
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, experiment.NewRegistry(), quietLogger(), theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".atomsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	rootCmd.Flags().StringVar(&theme, "theme", "lab", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headlessly and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also write the full result as JSON to this path")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run in the data directory")
	runCmd.Flags().StringVar(&scriptPath, "script", "", "play a yaml action script during the run")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final world as SVG to this path")
	runCmd.Flags().StringVar(&svgStyle, "svg-style", "world", "SVG rendering: world (vector atoms) or braille (terminal frame)")
	runCmd.Flags().BoolVar(&preview, "preview", false, "print the final frame to stdout")
	runCmd.Flags().StringVar(&theme, "theme", "lab", "colour theme for --preview and braille SVG")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch and poke a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "lab", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	liveCmd.Flags().StringVar(&gifPath, "gif", "atomsim.gif", "where G writes its recording")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run a scenario over consecutive seeds in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&series, "series", []string{"bonds", "molecules", "kinetic_energy"}, "columns to plot")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write each series as <dir>/<series>.svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summarise the series of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringSliceVar(&analyzeSeries, "series", seriesNames(), "columns to analyse")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "grid search physics tunables against a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&axes, "axis", nil, "tunable to vary, as name=lo:hi:n or name=v1,v2 (repeatable)")
	sweepCmd.Flags().StringVar(&metric, "metric", "molecules", "metric to optimise")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "prefer larger metric values")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "list physics tunables usable with sweep --axis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			tree, err := yaml.Marshal(cfg.Physics)
			if err != nil {
				return err
			}
			for _, n := range config.ParamNames() {
				fmt.Println(n)
			}
			if verbose {
				fmt.Printf("\ndefaults:\n%s", tree)
			}
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios and recipes",
		RunE:  listScenarios,
	}

	elementsCmd := &cobra.Command{
		Use:   "elements",
		Short: "print the element table",
		RunE:  listElements,
	}

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "list metric names",
		Run: func(cmd *cobra.Command, args []string) {
			for _, n := range metrics.Names() {
				fmt.Println(n)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, ensembleCmd, sweepCmd, listCmd, plotCmd, analyzeCmd, exportCmd, presetsCmd, scenariosCmd, elementsCmd, metricsCmd, paramsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "start from a named preset")
	f.IntVar(&ticks, "ticks", config.DefaultTicks, "frames to simulate")
	f.IntVar(&atoms, "atoms", config.DefaultAtoms, "atoms the scenario lays out")
	f.Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	f.IntVar(&substeps, "substeps", 8, "physics substeps per frame")
	f.Float64Var(&timeScale, "time-scale", 1, "decay clock multiplier (0 freezes decay)")
	f.StringSliceVar(&metricNames, "metrics", nil, "metrics to collect ("+strings.Join(metrics.Names(), ", ")+")")
	f.BoolVar(&validate, "validate", false, "stop on non-finite state")
}

func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// quietLogger is used under the full-screen UI, where stderr output would
// tear the display.
func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func loadBase() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveConfig layers preset, config file and explicit flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadBase()
	if err != nil {
		return nil, err
	}
	scenario := cfg.Scenario
	if len(args) > 0 {
		scenario = args[0]
	}
	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		if configFile == "" {
			cfg = p
		}
	}
	cfg.Scenario = scenario

	f := cmd.Flags()
	if f.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if f.Changed("atoms") {
		cfg.Atoms = atoms
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("substeps") {
		cfg.Physics.Substeps = substeps
	}
	if f.Changed("time-scale") {
		cfg.Physics.TimeScale = timeScale
	}
	if f.Changed("metrics") {
		cfg.Metrics = metricNames
	}
	if f.Changed("validate") {
		cfg.Validate = validate
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	log := logger()

	reg := experiment.NewRegistry()
	exp := experiment.New(cfg, reg, experiment.WithLogger(log))
	if err := exp.Setup(); err != nil {
		return err
	}
	var player *automation.Player
	if scriptPath != "" {
		script, err := automation.LoadScript(scriptPath)
		if err != nil {
			return err
		}
		player = automation.NewPlayer(script, exp.Runner().Engine(), reg, log)
		player.Start()
		exp.Runner().AddObserver(player)
	}
	if verbose {
		exp.Runner().AddObserver(sim.ObserverFunc(func(s sim.Stats) {
			if s.Tick%100 == 0 {
				log.Info("progress", "tick", s.Tick, "bonds", s.Bonds, "molecules", s.Molecules)
			}
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := exp.Run(ctx)
	if result == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "run stopped early: %v\n", err)
	}

	fmt.Printf("scenario: %s\n", cfg.Scenario)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Printf("atoms: %d  bonds: %d  molecules: %d\n", result.Final.Atoms, result.Final.Bonds, result.Final.Molecules)
	printMetrics(result.Metrics)
	if player != nil {
		fmt.Printf("\nscript: %d applied, %d failed, %d pending\n", player.Applied(), len(player.Errors()), player.Pending())
		for _, perr := range player.Errors() {
			fmt.Fprintf(os.Stderr, "  %v\n", perr)
		}
	}

	engine := exp.Runner().Engine()
	if preview {
		fmt.Println()
		fmt.Println(viz.Frame(engine, 80, 24, theme).String())
	}
	if svgOut != "" {
		if err := writeSnapshot(svgOut, engine); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	if jsonOut != "" {
		if err := storage.ExportJSONFile(jsonOut, cfg.Scenario, cfg.Seed, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
	}

	if noSave {
		return err
	}
	st := storage.New(dataDir)
	if initErr := st.Init(); initErr != nil {
		return initErr
	}
	id, saveErr := st.Save(storage.RunMetadata{
		Scenario:  cfg.Scenario,
		Preset:    preset,
		Seed:      cfg.Seed,
		Ticks:     cfg.Ticks,
		Substeps:  cfg.Physics.Substeps,
		TimeScale: cfg.Physics.TimeScale,
	}, result)
	if saveErr != nil {
		return saveErr
	}
	fmt.Printf("saved: %s\n", id)
	return err
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nMETRIC\tVALUE")
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", n, m[n])
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()
	ps := particle.NewSystem(2000)
	exp := experiment.New(cfg, reg, experiment.WithParticleSink(ps), experiment.WithLogger(quietLogger()))
	engine, err := exp.Build(cfg.Seed)
	if err != nil {
		return err
	}
	m := viz.NewModel(engine, ps,
		viz.WithTitle(cfg.Scenario),
		viz.WithRegistry(reg),
		viz.WithTheme(theme),
		viz.WithGIFPath(gifPath),
	)
	return viz.RunLive(m)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	exp := experiment.New(cfg, experiment.NewRegistry(), experiment.WithLogger(logger()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := exp.Ensemble(ctx, runs)
	if err != nil {
		return err
	}

	names := make([]string, 0)
	for n := range results[0].Metrics {
		names = append(names, n)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\tBONDS\tMOLECULES\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d", cfg.Seed+int64(i), r.Final.Bonds, r.Final.Molecules)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV")
	for _, n := range names {
		vals := make([]float64, len(results))
		for i, r := range results {
			vals[i] = r.Metrics[n]
		}
		mean, std := stat.MeanStdDev(vals, nil)
		if math.IsNaN(std) {
			std = 0
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", n, mean, std)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	list, err := st.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tSEED\tATOMS\tBONDS\tMOLECULES")
	for _, run := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Seed,
			run.Atoms,
			run.Bonds,
			run.Molecules,
		)
	}
	return w.Flush()
}

var seriesPick = map[string]func(sim.Stats) float64{
	"atoms":          func(s sim.Stats) float64 { return float64(s.Atoms) },
	"bonds":          func(s sim.Stats) float64 { return float64(s.Bonds) },
	"molecules":      func(s sim.Stats) float64 { return float64(s.Molecules) },
	"wells":          func(s sim.Stats) float64 { return float64(s.Wells) },
	"kinetic_energy": func(s sim.Stats) float64 { return s.KineticEnergy },
	"max_speed":      func(s sim.Stats) float64 { return s.MaxSpeed },
	"reactions":      func(s sim.Stats) float64 { return float64(s.Reactions()) },
	"decays":         func(s sim.Stats) float64 { return float64(s.Decayed + s.Vanished) },
}

func seriesNames() []string {
	names := make([]string, 0, len(seriesPick))
	for k := range seriesPick {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// column pulls one named series out of recorded stats.
func column(stats []sim.Stats, name string) ([]float64, error) {
	fn, ok := seriesPick[name]
	if !ok {
		return nil, fmt.Errorf("unknown series %q (available: %v)", name, seriesNames())
	}
	out := make([]float64, len(stats))
	for i, s := range stats {
		out[i] = fn(s)
	}
	return out, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(stats))

	for _, name := range series {
		data, err := column(stats, name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgOut != "" {
			if err := os.MkdirAll(svgOut, 0755); err != nil {
				return err
			}
			path := filepath.Join(svgOut, name+".svg")
			if err := os.WriteFile(path, []byte(export.SeriesSVG(data, 800, 300, "#50fa7b")), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n\n", path)
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stats, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("no data to analyse")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMEAN\tSTDDEV\tMIN\tMAX\tFINAL\tSETTLED\tPERIOD")
	for _, name := range analyzeSeries {
		data, err := column(stats, name)
		if err != nil {
			return err
		}
		s := analysis.Summarize(data, analysis.DefaultTolerance)
		settled, period := "no", "-"
		if s.Settled {
			settled = fmt.Sprintf("tick %d", stats[s.SettleTick].Tick)
		}
		if s.Periodic {
			period = fmt.Sprintf("%.1f ticks", s.Period)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%s\t%s\n",
			name, s.Mean, s.StdDev, s.Min, s.Max, s.Final, settled, period)
	}
	return w.Flush()
}

func writeSnapshot(path string, e *sim.Engine) error {
	switch svgStyle {
	case "world":
	case "braille":
		svg := export.CanvasToSVG(viz.Frame(e, 160, 60, theme), 4)
		return os.WriteFile(path, []byte(svg), 0644)
	default:
		return fmt.Errorf("unknown svg style %q (want world or braille)", svgStyle)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Snapshot(f, e); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(axes) == 0 {
		return fmt.Errorf("at least one --axis is required (see atomsim params)")
	}
	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	for _, a := range axes {
		name, vals, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	grid, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	if _, err := metrics.ByName(metric); err != nil {
		return err
	}
	if len(cfg.Metrics) > 0 && !slices.Contains(cfg.Metrics, metric) {
		cfg.Metrics = append(cfg.Metrics, metric)
	}

	log := logger()
	reg := experiment.NewRegistry()
	run := func(ctx context.Context, c *config.Config) (*sim.Result, error) {
		exp := experiment.New(c, reg, experiment.WithLogger(log))
		if err := exp.Setup(); err != nil {
			return nil, err
		}
		return exp.Run(ctx)
	}
	goal := optim.Minimize
	if maximize {
		goal = optim.Maximize
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("sweep started", "points", grid.Size(), "metric", metric)
	trials, best, err := grid.Search(ctx, cfg, run, metric, goal)
	if len(trials) == 0 {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tBONDS\tMOLECULES\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metric))
	for i, t := range trials {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", t.Params[n])
		}
		if t.Err != nil {
			fmt.Fprintf(w, "error: %v\t\t\n", t.Err)
			continue
		}
		mark := ""
		if i == best {
			mark = "  *"
		}
		fmt.Fprintf(w, "%.4f\t%d\t%d%s\n", t.Metrics[metric], t.Final.Bonds, t.Final.Molecules, mark)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}
	fmt.Printf("\nbest %s = %.4f at", metric, trials[best].Metrics[metric])
	for _, n := range names {
		fmt.Printf(" %s=%g", n, trials[best].Params[n])
	}
	fmt.Println()
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func listScenarios(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tPRESETS\tDESCRIPTION")
	for _, name := range reg.ListScenarios() {
		sc, err := reg.Scenario(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(config.ListPresets(name), ","), sc.Description)
	}
	fmt.Fprintln(w, "\nRECIPE\tFORMULA\tATOMS")
	for _, name := range reg.ListRecipes() {
		rec, err := reg.Recipe(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, rec.Formula, len(rec.Ingredients))
	}
	return w.Flush()
}

func listElements(cmd *cobra.Command, args []string) error {
	table := element.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Z\tSYMBOL\tNAME\tVALENCE\tISOTOPES")
	for _, n := range table.Numbers() {
		el, _ := table.Lookup(n)
		isotopes := make([]string, 0, len(el.Isotopes))
		for _, iso := range el.Isotopes {
			s := fmt.Sprintf("%.0f", math.Round(iso.Mass))
			if !iso.Stable() {
				s += fmt.Sprintf(" (%s, %.3gs)", iso.Mode, iso.HalfLife)
			}
			isotopes = append(isotopes, s)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", el.Number, el.Symbol, el.Name, el.Valence, strings.Join(isotopes, "; "))
	}
	return w.Flush()
}
