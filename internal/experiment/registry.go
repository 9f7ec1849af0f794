package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/metrics"
	"github.com/san-kum/maxwell/internal/physics"
)

type Registry struct {
	metrics map[string]func(physics.Params) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(physics.Params) dynamo.Metric),
	}

	r.metrics["energy_residual"] = func(physics.Params) dynamo.Metric { return metrics.NewEnergyResidual() }
	r.metrics["peak_kinetic"] = func(physics.Params) dynamo.Metric { return metrics.NewPeakEnergy() }
	r.metrics["rotational_share"] = func(physics.Params) dynamo.Metric { return metrics.NewRotationalShare() }
	r.metrics["bounds_violations"] = func(p physics.Params) dynamo.Metric {
		return metrics.NewBoundsViolations(p.InitialHeight)
	}
	r.metrics["reversals"] = func(physics.Params) dynamo.Metric { return metrics.NewReversals() }
	r.metrics["peak_speed"] = func(physics.Params) dynamo.Metric { return metrics.NewPeakSpeed() }

	return r
}

func (r *Registry) GetMetric(name string, p physics.Params) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(p), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns one fresh instance of every registered metric.
func (r *Registry) DefaultMetrics(p physics.Params) []dynamo.Metric {
	ms := make([]dynamo.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		ms = append(ms, r.metrics[name](p))
	}
	return ms
}
