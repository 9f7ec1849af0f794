package experiment

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type SweepPoint struct {
	Value  float64
	Result *Result
}

// Sweep runs base once per value of param, at most workers at a time.
// Points come back in the order of values. The first failing run cancels
// the rest.
func Sweep(ctx context.Context, base Config, param string, values []float64, workers int) ([]SweepPoint, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cfgs := make([]Config, len(values))
	for i, v := range values {
		cfg, err := base.With(param, v)
		if err != nil {
			return nil, err
		}
		cfgs[i] = cfg
	}

	points := make([]SweepPoint, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range cfgs {
		g.Go(func() error {
			exp, err := New(cfgs[i])
			if err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			points[i] = SweepPoint{Value: values[i], Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Logspace returns n values from lo to hi inclusive, evenly spaced in log10.
// lo and hi must be positive.
func Logspace(lo, hi float64, n int) []float64 {
	if lo <= 0 || hi <= 0 {
		return nil
	}
	exps := Linspace(math.Log10(lo), math.Log10(hi), n)
	for i, e := range exps {
		exps[i] = math.Pow(10, e)
	}
	if n > 1 {
		exps[0], exps[n-1] = lo, hi
	}
	return exps
}
