package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/sim"
)

var ErrNoTrials = errors.New("grid search produced no trials")

// Goal says whether the searched metric should be small or large.
type Goal int

const (
	Minimize Goal = iota
	Maximize
)

// Trial is one grid point and the metrics its run produced.
type Trial struct {
	Params  map[string]float64
	Metrics map[string]float64
	Final   sim.Stats
	Err     error
}

// RunFunc runs one configured experiment.
type RunFunc func(ctx context.Context, cfg *config.Config) (*sim.Result, error)

// GridSearch tries every combination of the given physics tunables.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d params but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("param %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs base with every grid point applied and returns the trials in
// grid order plus the index of the best one by metric. Trials whose config is
// rejected or whose run fails keep their error and are never best.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, run RunFunc, metric string, goal Goal) ([]Trial, int, error) {
	trials := make([]Trial, 0, g.Size())
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, base, run, &trials); err != nil {
		return trials, -1, err
	}

	best, bestVal := -1, math.Inf(1)
	for i, t := range trials {
		if t.Err != nil {
			continue
		}
		v, ok := t.Metrics[metric]
		if !ok {
			return trials, -1, fmt.Errorf("metric %q not collected", metric)
		}
		if goal == Maximize {
			v = -v
		}
		if v < bestVal {
			best, bestVal = i, v
		}
	}
	if best < 0 {
		return trials, -1, ErrNoTrials
	}
	return trials, best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, base *config.Config, run RunFunc, trials *[]Trial) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		trial := Trial{Params: params}

		cfg := base.Clone()
		for _, name := range sortedKeys(params) {
			if err := cfg.SetParam(name, params[name]); err != nil {
				trial.Err = err
				break
			}
		}
		if trial.Err == nil {
			res, err := run(ctx, cfg)
			switch {
			case err != nil && ctx.Err() != nil:
				return ctx.Err()
			case err != nil:
				trial.Err = err
			default:
				trial.Metrics, trial.Final = res.Metrics, res.Final
			}
		}
		*trials = append(*trials, trial)
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, base, run, trials); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseAxis reads "name=lo:hi:n" (n evenly spaced values) or
// "name=v1,v2,...".
func ParseAxis(s string) (string, []float64, error) {
	name, def, ok := strings.Cut(s, "=")
	if !ok || name == "" || def == "" {
		return "", nil, fmt.Errorf("axis %q: want name=lo:hi:n or name=v1,v2", s)
	}
	if parts := strings.Split(def, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return "", nil, fmt.Errorf("axis %q: %w", s, err)
		}
		if n < 1 {
			return "", nil, fmt.Errorf("axis %q: need at least one value", s)
		}
		return name, Linspace(lo, hi, n), nil
	}
	var vals []float64
	for _, f := range strings.Split(def, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("axis %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}
