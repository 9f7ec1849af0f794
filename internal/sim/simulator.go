package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Starter is implemented by steppers that must be armed before they advance.
type Starter interface {
	Start()
}

// Simulator runs a stepper headlessly for a fixed number of steps and feeds
// every accepted record to the registered metrics and observers.
type Simulator struct {
	stepper   dynamo.Stepper
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(stepper dynamo.Stepper) *Simulator {
	return &Simulator{
		stepper:   stepper,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	return s.RunWithCallback(ctx, cfg, nil)
}

// RunWithCallback steps until duration elapses or callback returns false.
// callback sees every accepted record after metrics and observers have. A nil
// callback runs the full duration.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg dynamo.Config, callback func(dynamo.Record) bool) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &dynamo.Result{
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	if st, ok := s.stepper.(Starter); ok {
		st.Start()
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		result.Steps++
		result.Elapsed += cfg.Dt
		if !s.stepper.Step(cfg.Dt) {
			continue
		}
		rec, ok := s.stepper.Last()
		if !ok {
			continue
		}

		if cfg.ValidateState && !rec.Valid() {
			result.Errors = append(result.Errors, dynamo.SimError{Time: rec.Time, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}
		result.Accepted++

		for _, m := range s.metrics {
			m.Observe(rec)
		}
		for _, obs := range s.observers {
			obs.OnStep(rec)
		}
		if callback != nil && !callback(rec) {
			break
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *dynamo.Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg dynamo.Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt=%g", dynamo.ErrInvalidStep, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration=%g", dynamo.ErrInvalidStep, cfg.Duration)
	}
	return nil
}
