package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/experiment"
	"github.com/san-kum/maxwell/internal/export"
	"github.com/san-kum/maxwell/internal/physics"
	"github.com/san-kum/maxwell/internal/storage"
)

// Scenario is a scripted batch of runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one run of a scenario. Params override the preset (or the
// defaults) by name.
type ScenarioRun struct {
	Name     string             `yaml:"name"`
	Preset   string             `yaml:"preset"`
	Params   map[string]float64 `yaml:"params"`
	Floor    string             `yaml:"floor"`
	Dt       float64            `yaml:"dt"`
	Duration float64            `yaml:"duration"`
	Save     *bool              `yaml:"save"`
	PlotsDir string             `yaml:"plots_dir"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %s: no runs", path)
	}
	return &scenario, nil
}

// Config resolves the run against the preset table and defaults.
func (r ScenarioRun) Config() (experiment.Config, error) {
	cfg := experiment.DefaultConfig()
	if r.Preset != "" {
		p, ok := config.GetPreset(r.Preset)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", config.ErrUnknownPreset, r.Preset)
		}
		cfg.Preset = p.Name
		cfg.Params = p.Params
		if p.Duration > 0 {
			cfg.Duration = p.Duration
		}
	}
	for name, v := range r.Params {
		next, err := cfg.With(name, v)
		if err != nil {
			return cfg, err
		}
		cfg = next
	}
	if r.Floor != "" {
		m, err := physics.ParseFloorMode(r.Floor)
		if err != nil {
			return cfg, err
		}
		cfg.Floor = m
	}
	if r.Dt > 0 {
		cfg.Dt = r.Dt
	}
	if r.Duration > 0 {
		cfg.Duration = r.Duration
	}
	return cfg, nil
}

type Outcome struct {
	Name   string
	RunID  string
	Result *experiment.Result
	Plots  []string
}

// RunScenario executes the runs in order. Runs are saved to store unless
// they opt out or store is nil. A failing run stops the scenario; outcomes
// of the runs before it are returned with the error.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *log.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	outcomes := make([]Outcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		name := run.Name
		if name == "" {
			name = fmt.Sprintf("run %d", i+1)
		}
		logger.Info("running", "scenario", scenario.Name, "step", fmt.Sprintf("%d/%d", i+1, len(scenario.Runs)), "name", name)

		cfg, err := run.Config()
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", name, err)
		}
		exp, err := experiment.New(cfg)
		if err != nil {
			return outcomes, fmt.Errorf("%s setup: %w", name, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("%s run: %w", name, err)
		}

		out := Outcome{Name: name, Result: result}
		if store != nil && (run.Save == nil || *run.Save) {
			id, err := store.Save(result.Meta(), result.History)
			if err != nil {
				return outcomes, fmt.Errorf("%s save: %w", name, err)
			}
			out.RunID = id
			logger.Debug("saved", "name", name, "id", id)
		}
		if run.PlotsDir != "" {
			dir := run.PlotsDir
			if out.RunID != "" {
				dir = filepath.Join(dir, out.RunID)
			}
			paths, err := export.SavePlots(result.History, dir)
			if err != nil {
				logger.Warn("plots skipped", "name", name, "err", err)
			}
			out.Plots = paths
		}

		if result.HasBottom {
			logger.Info("done", "name", name, "T", fmt.Sprintf("%.4f", result.TimeToBottom))
		} else {
			logger.Info("done", "name", name, "T", "—")
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// MonteCarloConfig perturbs every parameter of Base by a uniform relative
// amount in [-Perturbation, +Perturbation] per trial. Trials run on at most
// Workers goroutines (one per CPU when Workers <= 0).
type MonteCarloConfig struct {
	Base         experiment.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
	Workers      int
}

type MonteCarloResult struct {
	TrialID      int
	Params       physics.Params
	TimeToBottom float64
	HasBottom    bool
}

// RunMonteCarlo draws every trial's parameters up front so a given seed gives
// the same results whatever the worker count.
func RunMonteCarlo(ctx context.Context, cfg MonteCarloConfig, logger *log.Logger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.NumTrials <= 0 {
		return nil, nil
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	trials := make([]experiment.Config, cfg.NumTrials)
	for i := range trials {
		expCfg := cfg.Base
		for _, name := range physics.ParamNames() {
			v, _ := expCfg.Params.Get(name)
			expCfg.Params, _ = expCfg.Params.With(name, v*(1+(rng.Float64()-0.5)*2*cfg.Perturbation))
		}
		trials[i] = expCfg
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	var done atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range trials {
		eg.Go(func() error {
			exp, err := experiment.New(trials[i])
			if err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = MonteCarloResult{
				TrialID:      i,
				Params:       res.Config.Params,
				TimeToBottom: res.TimeToBottom,
				HasBottom:    res.HasBottom,
			}
			if n := done.Add(1); n%10 == 0 {
				logger.Debug("monte carlo", "done", n, "of", cfg.NumTrials)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloStats summarizes time to bottom over the trials that reached it.
func MonteCarloStats(results []MonteCarloResult) (mean, std float64, reached int) {
	for _, r := range results {
		if r.HasBottom {
			mean += r.TimeToBottom
			reached++
		}
	}
	if reached == 0 {
		return 0, 0, 0
	}
	mean /= float64(reached)
	for _, r := range results {
		if r.HasBottom {
			d := r.TimeToBottom - mean
			std += d * d
		}
	}
	return mean, math.Sqrt(std / float64(reached)), reached
}
