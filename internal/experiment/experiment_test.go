package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/physics"
)

func labConfig() Config {
	cfg := DefaultConfig()
	cfg.Preset = "lab"
	cfg.Params = physics.Params{Mass: 0.045, AxleRadius: 0.0075, Inertia: 5.25e-5, InitialHeight: 0.24, Gravity: 9.81}
	cfg.Duration = 2.5
	return cfg
}

func TestExperimentRun(t *testing.T) {
	exp, err := New(labConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if res.Run.Accepted != 2500 || res.History.Len() != 2500 {
		t.Errorf("accepted %d, history %d", res.Run.Accepted, res.History.Len())
	}
	if !res.HasBottom || math.Abs(res.TimeToBottom-res.Analytic.FallTime) > 0.001 {
		t.Errorf("TimeToBottom = %v (analytic %v)", res.TimeToBottom, res.Analytic.FallTime)
	}
	for _, name := range NewRegistry().ListMetrics() {
		if _, ok := res.Run.Metrics[name]; !ok {
			t.Errorf("metric %s missing", name)
		}
	}
	if res.Run.Metrics["bounds_violations"] != 0 {
		t.Error("height left the travel range")
	}

	meta := res.Meta()
	if meta.Preset != "lab" || meta.Steps != 2500 || meta.Floor != "reflect" || !meta.HasBottom {
		t.Errorf("unexpected meta %+v", meta)
	}
}

func TestExperimentSelectedMetrics(t *testing.T) {
	cfg := labConfig()
	cfg.Metrics = []string{"reversals"}
	exp, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Run.Metrics) != 1 || res.Run.Metrics["reversals"] != 2 {
		t.Errorf("unexpected metrics %v", res.Run.Metrics)
	}

	cfg.Metrics = []string{"nope"}
	if _, err := New(cfg); err == nil {
		t.Error("expected unknown metric error")
	}
}

func TestExperimentReportsClampedParams(t *testing.T) {
	cfg := labConfig()
	cfg.Params.Mass = 10
	cfg.Duration = 0.01
	exp, _ := New(cfg)
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Config.Params.Mass != 1 {
		t.Errorf("expected clamped mass, got %v", res.Config.Params.Mass)
	}
}

func TestFromConfig(t *testing.T) {
	c := config.DefaultConfig()
	c.Floor = "absorb"
	c.HistoryCap = 10
	cfg := FromConfig(c)
	if cfg.Floor != physics.FloorAbsorb || cfg.HistoryCap != 10 || cfg.Dt != c.Dt {
		t.Errorf("unexpected conversion %+v", cfg)
	}
}

func TestSweep(t *testing.T) {
	values := Linspace(0.1, 0.5, 5)
	points, err := Sweep(context.Background(), labConfig(), physics.ParamInitialHeight, values, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	prev := 0.0
	for i, p := range points {
		if p.Value != values[i] || p.Result.Config.Params.InitialHeight != values[i] {
			t.Errorf("point %d out of order: %v", i, p.Value)
		}
		if !p.Result.HasBottom {
			t.Errorf("point %d never reached the bottom", i)
			continue
		}
		if p.Result.TimeToBottom <= prev {
			t.Errorf("time to bottom should grow with height: %v <= %v", p.Result.TimeToBottom, prev)
		}
		prev = p.Result.TimeToBottom
	}
}

func TestSweepUnknownParam(t *testing.T) {
	_, err := Sweep(context.Background(), labConfig(), "length", []float64{1}, 1)
	if !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestSweepCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Sweep(ctx, labConfig(), physics.ParamMass, []float64{0.1, 0.2}, 1); err == nil {
		t.Error("expected error from canceled sweep")
	}
}

func TestLinspaceLogspace(t *testing.T) {
	lin := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(lin[i]-want[i]) > 1e-12 {
			t.Errorf("Linspace[%d] = %v", i, lin[i])
		}
	}
	if Linspace(0, 1, 0) != nil || len(Linspace(3, 4, 1)) != 1 {
		t.Error("unexpected edge-case output")
	}

	logs := Logspace(1e-5, 1e-3, 3)
	if logs[0] != 1e-5 || logs[2] != 1e-3 || math.Abs(logs[1]-1e-4) > 1e-16 {
		t.Errorf("Logspace = %v", logs)
	}
	if Logspace(0, 1, 3) != nil {
		t.Error("non-positive bounds should yield nil")
	}
}

func TestExperimentStopAtBottom(t *testing.T) {
	cfg := labConfig()
	cfg.StopAtBottom = true
	exp, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if !res.HasBottom {
		t.Fatal("run stopped without reaching the bottom")
	}
	if res.Run.Accepted != res.History.Len() {
		t.Errorf("accepted %d, history %d", res.Run.Accepted, res.History.Len())
	}
	last := res.History.Time[res.History.Len()-1]
	if last < res.TimeToBottom || last >= res.TimeToBottom+cfg.Dt+1e-9 {
		t.Errorf("last record at %v, bottom at %v", last, res.TimeToBottom)
	}
	if res.Run.Accepted >= 2500 {
		t.Errorf("expected an early stop, ran %d steps", res.Run.Accepted)
	}
}
