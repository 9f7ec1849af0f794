package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/maxwell/internal/experiment"
	"github.com/san-kum/maxwell/internal/physics"
)

// Objective scores a finished run; lower is better. NaN skips the point.
type Objective func(*experiment.Result) float64

// TimeToBottom scores how far a run's time to bottom is from target.
// Runs that never reach the bottom score +Inf.
func TimeToBottom(target float64) Objective {
	return func(r *experiment.Result) float64 {
		if !r.HasBottom {
			return math.Inf(1)
		}
		return math.Abs(r.TimeToBottom - target)
	}
}

// Metric scores a run by one of its recorded metrics.
func Metric(name string) Objective {
	return func(r *experiment.Result) float64 {
		v, ok := r.Run.Metrics[name]
		if !ok {
			return math.NaN()
		}
		return v
	}
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params but %d ranges", len(params), len(ranges))
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// SetWorkers bounds how many grid points run at once. n <= 0 means one per
// CPU.
func (g *GridSearch) SetWorkers(n int) { g.workers = n }

var ErrNoCandidate = errors.New("optim: no grid point produced a score")

// Search runs every grid point and returns the parameters with the lowest
// score. Reported values are the ones the wheel ran with, after clamping.
// Ties go to the point listed first in the grid.
func (g *GridSearch) Search(ctx context.Context, base experiment.Config, objective Objective) (map[string]float64, float64, error) {
	var points []experiment.Config
	if err := g.collect(0, base, &points); err != nil {
		return nil, 0, err
	}

	workers := g.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	scores := make([]float64, len(points))
	applied := make([]physics.Params, len(points))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range points {
		eg.Go(func() error {
			exp, err := experiment.New(points[i])
			if err != nil {
				return err
			}
			result, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			scores[i] = objective(result)
			applied[i] = result.Config.Params
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}

	bestIdx := -1
	for i, s := range scores {
		if math.IsNaN(s) {
			continue
		}
		if bestIdx < 0 || s < scores[bestIdx] {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil, 0, ErrNoCandidate
	}

	best := make(map[string]float64, len(g.paramNames))
	for _, name := range g.paramNames {
		best[name], _ = applied[bestIdx].Get(name)
	}
	return best, scores[bestIdx], nil
}

// collect expands the grid depth first into one config per point.
func (g *GridSearch) collect(depth int, cfg experiment.Config, out *[]experiment.Config) error {
	if depth == len(g.paramNames) {
		*out = append(*out, cfg)
		return nil
	}
	for _, val := range g.ranges[depth] {
		next, err := cfg.With(g.paramNames[depth], val)
		if err != nil {
			return err
		}
		if err := g.collect(depth+1, next, out); err != nil {
			return err
		}
	}
	return nil
}
