package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/maxwell/internal/analysis"
	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
	"github.com/san-kum/maxwell/internal/sim"
	"github.com/san-kum/maxwell/internal/storage"
)

type Config struct {
	Preset     string
	Params     physics.Params
	Floor      physics.FloorMode
	Dt         float64
	Duration   float64
	HistoryCap int
	Metrics    []string

	// StopAtBottom ends the run on the step that first reaches the bottom.
	StopAtBottom bool
}

func DefaultConfig() Config {
	return Config{
		Params:   physics.DefaultParams(),
		Floor:    physics.FloorReflect,
		Dt:       config.DefaultDt,
		Duration: config.DefaultDuration,
	}
}

// FromConfig converts a resolved file/flag configuration.
func FromConfig(c *config.Config) Config {
	return Config{
		Preset:     c.Preset,
		Params:     c.Params,
		Floor:      c.FloorMode(),
		Dt:         c.Dt,
		Duration:   c.Duration,
		HistoryCap: c.HistoryCap,
	}
}

// With returns a copy with one parameter replaced by name.
func (c Config) With(param string, v float64) (Config, error) {
	p, ok := c.Params.With(param, v)
	if !ok {
		return c, fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, param)
	}
	c.Params = p
	return c, nil
}

type Experiment struct {
	cfg       Config
	wheel     *physics.Wheel
	simulator *sim.Simulator
}

func New(cfg Config) (*Experiment, error) {
	wheel := physics.NewWheel(cfg.Params,
		physics.WithFloor(cfg.Floor),
		physics.WithHistoryCapacity(cfg.HistoryCap),
	)

	reg := NewRegistry()
	ms := reg.DefaultMetrics(wheel.Params())
	if len(cfg.Metrics) > 0 {
		ms = ms[:0]
		for _, name := range cfg.Metrics {
			m, err := reg.GetMetric(name, wheel.Params())
			if err != nil {
				return nil, err
			}
			ms = append(ms, m)
		}
	}

	s := sim.New(wheel)
	for _, m := range ms {
		s.AddMetric(m)
	}
	return &Experiment{cfg: cfg, wheel: wheel, simulator: s}, nil
}

type Result struct {
	Config       Config
	Run          *dynamo.Result
	History      dynamo.Snapshot
	TimeToBottom float64
	HasBottom    bool
	Analytic     analysis.Analytic
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	var untilBottom func(dynamo.Record) bool
	if e.cfg.StopAtBottom {
		untilBottom = func(dynamo.Record) bool {
			_, reached := e.wheel.TimeToBottom()
			return !reached
		}
	}
	run, err := e.simulator.RunWithCallback(ctx, dynamo.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: true,
	}, untilBottom)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Config:  e.cfg,
		Run:     run,
		History: e.wheel.History(),
	}
	res.TimeToBottom, res.HasBottom = e.wheel.TimeToBottom()
	res.Analytic, _ = analysis.Reference(e.wheel.Params())
	// the wheel clamps, so report what was actually simulated
	res.Config.Params = e.wheel.Params()
	return res, nil
}

// Simulator exposes the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

func (e *Experiment) Wheel() *physics.Wheel { return e.wheel }

// Meta builds the catalog entry for this result.
func (r *Result) Meta() *storage.RunMeta {
	return &storage.RunMeta{
		Preset:       r.Config.Preset,
		Params:       r.Config.Params,
		Floor:        r.Config.Floor.String(),
		Dt:           r.Config.Dt,
		Duration:     r.Config.Duration,
		Steps:        r.Run.Accepted,
		TimeToBottom: r.TimeToBottom,
		HasBottom:    r.HasBottom,
		Metrics:      r.Run.Metrics,
	}
}
